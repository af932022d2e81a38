// Package file stores the index as a single JSON artifact on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docrag/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/logger"
)

// Verify interface compliance.
var _ driven.IndexStore = (*IndexStore)(nil)

// DefaultPath is the artifact location relative to the project root.
const DefaultPath = "project/docs/rag_index.json"

// IndexStore reads and writes the index artifact at a fixed path.
type IndexStore struct {
	path string
}

// NewIndexStore creates a store for the artifact at path.
// If path is empty, DefaultPath is used.
func NewIndexStore(path string) *IndexStore {
	if path == "" {
		path = DefaultPath
	}
	return &IndexStore{path: path}
}

// Save writes the artifact to a temporary file in the same directory and
// renames it into place, so readers never observe a partial index.
func (s *IndexStore) Save(ctx context.Context, idx *domain.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := codec.Encode(idx)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rag_index-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing index: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting index permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing index: %w", err)
	}

	logger.Debug("wrote index to %s (%d bytes)", s.path, len(data))
	return nil
}

// Load reads and decodes the artifact.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrIndexNotFound
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrStoreUnavailable, s.path, err)
	}

	idx, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return idx, nil
}

// Size returns the artifact size in bytes.
func (s *IndexStore) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Location returns the artifact path.
func (s *IndexStore) Location() string {
	return s.path
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}
