// Package filesystem loads the project's documentation files from disk.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/logger"
)

// Verify interface compliance.
var _ driven.DocumentLoader = (*Loader)(nil)

// Default configuration values.
const (
	DefaultOverviewFile = "README.md"
	DefaultDocsDir      = "project/docs"
	DefaultDocsPattern  = "*.md"
)

// DefaultGuides are the supplementary guides read from the project root.
var DefaultGuides = []string{
	"RAG_COMPLETE_GUIDE.md",
	"RAG_FILTERING_GUIDE.md",
	"TESTING_GUIDE.md",
	"CHANGES_SUMMARY.md",
}

// Config describes where documentation lives. Relative paths resolve
// against Root.
type Config struct {
	// Root is the project root (default: current directory).
	Root string

	// OverviewFile is read first (default: README.md).
	OverviewFile string

	// DocsDir holds the documentation files (default: project/docs).
	DocsDir string

	// DocsPattern selects files in DocsDir (default: *.md).
	DocsPattern string

	// Guides are read last, in order. Nil means DefaultGuides.
	Guides []string
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.OverviewFile == "" {
		c.OverviewFile = DefaultOverviewFile
	}
	if c.DocsDir == "" {
		c.DocsDir = DefaultDocsDir
	}
	if c.DocsPattern == "" {
		c.DocsPattern = DefaultDocsPattern
	}
	if c.Guides == nil {
		c.Guides = DefaultGuides
	}
	return c
}

// Loader reads the overview file, the docs directory and the guides.
type Loader struct {
	cfg Config
}

// New creates a loader for cfg.
func New(cfg Config) *Loader {
	return &Loader{cfg: cfg.withDefaults()}
}

func (l *Loader) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(l.cfg.Root, p)
}

// loadState accumulates one pass.
type loadState struct {
	result *domain.LoadResult
	paths  map[string]bool
	names  map[string]bool
	root   string
}

// Load reads every configured source. It only fails on context
// cancellation; unreadable sources are listed in LoadResult.Missing.
func (l *Loader) Load(ctx context.Context) (*domain.LoadResult, error) {
	st := &loadState{
		result: &domain.LoadResult{},
		paths:  make(map[string]bool),
		names:  make(map[string]bool),
		root:   l.cfg.Root,
	}

	logger.Section("Loading Documents")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st.add(filepath.Base(l.cfg.OverviewFile), l.resolve(l.cfg.OverviewFile))

	docsDir := l.resolve(l.cfg.DocsDir)
	matches, err := l.docsFiles(docsDir)
	if err != nil {
		logger.Debug("docs directory %s unavailable: %v", docsDir, err)
		st.result.Missing = append(st.result.Missing, domain.MissingSource{
			Name:   l.cfg.DocsDir,
			Path:   docsDir,
			Reason: reason(err),
		})
	}
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.add(name, filepath.Join(docsDir, name))
	}

	for _, guide := range l.cfg.Guides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		st.add(filepath.Base(guide), l.resolve(guide))
	}

	logger.Info("loaded %d documents, %d missing", len(st.result.Documents), len(st.result.Missing))
	return st.result, nil
}

// docsFiles lists matching regular, non-hidden files ordered by name.
func (l *Loader) docsFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ok, err := filepath.Match(l.cfg.DocsPattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func (st *loadState) add(name, path string) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if st.paths[key] {
		logger.Debug("skipping %s: already loaded", path)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("source %s unavailable: %v", path, err)
		st.result.Missing = append(st.result.Missing, domain.MissingSource{
			Name:   name,
			Path:   path,
			Reason: reason(err),
		})
		return
	}
	st.paths[key] = true

	if st.names[name] {
		if rel, err := filepath.Rel(st.root, path); err == nil {
			name = filepath.ToSlash(rel)
		}
	}
	st.names[name] = true

	logger.Debug("loaded %s (%d chars)", name, len([]rune(string(data))))
	st.result.Documents = append(st.result.Documents, domain.SourceDocument{
		Name:    name,
		Path:    path,
		Content: string(data),
	})
}

func reason(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "not found"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
