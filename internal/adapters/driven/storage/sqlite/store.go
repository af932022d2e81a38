package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/vector"
)

// Verify interface compliance.
var _ driven.IndexStore = (*Store)(nil)

// DefaultPath is the database location relative to the project root.
const DefaultPath = "project/docs/rag_index.db"

// Store persists the index in an SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at path and runs
// migrations. If path is empty, DefaultPath is used.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Location returns the database file path.
func (s *Store) Location() string {
	return s.path
}

// Save replaces the stored index in a single transaction.
func (s *Store) Save(ctx context.Context, idx *domain.Index) error {
	if idx == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM index_chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_metadata"); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}

	createdAt := ""
	if !idx.Metadata.CreatedAt.IsZero() {
		createdAt = idx.Metadata.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO index_metadata (id, index_id, chunk_size, chunk_overlap, embedding_model, total_chunks, dimensions, created_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`, idx.Metadata.IndexID, idx.Metadata.ChunkSize, idx.Metadata.ChunkOverlap,
		idx.Metadata.EmbeddingModel, len(idx.Chunks), idx.Metadata.Dimensions, createdAt)
	if err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO index_chunks (ordinal, source, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, c := range idx.Chunks {
		if _, err := stmt.ExecContext(ctx, i, c.Source, c.ChunkIndex, c.Content, vector.Encode(c.Embedding)); err != nil {
			return fmt.Errorf("saving chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads the stored index.
func (s *Store) Load(ctx context.Context) (*domain.Index, error) {
	var meta domain.IndexMetadata
	var createdAt string
	row := s.db.QueryRowContext(ctx, `
		SELECT index_id, chunk_size, chunk_overlap, embedding_model, total_chunks, dimensions, created_at
		FROM index_metadata WHERE id = 1
	`)
	if err := row.Scan(&meta.IndexID, &meta.ChunkSize, &meta.ChunkOverlap,
		&meta.EmbeddingModel, &meta.TotalChunks, &meta.Dimensions, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("%w: scanning metadata: %w", domain.ErrStoreUnavailable, err)
	}
	if createdAt != "" {
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: created_at %q: %w", domain.ErrIndexCorrupt, createdAt, err)
		}
		meta.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, chunk_index, content, embedding
		FROM index_chunks ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	idx := &domain.Index{Metadata: meta}
	for rows.Next() {
		var c domain.DocumentChunk
		var blob []byte
		if err := rows.Scan(&c.Source, &c.ChunkIndex, &c.Content, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		c.Embedding, err = vector.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrIndexCorrupt, err)
		}
		idx.Chunks = append(idx.Chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_index.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
