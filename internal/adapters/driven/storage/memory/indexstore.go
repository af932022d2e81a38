// Package memory provides an in-process index store for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore keeps a deep copy of the last saved index.
type IndexStore struct {
	mu    sync.RWMutex
	index *domain.Index
	saves int
}

// NewIndexStore creates an empty store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// Save replaces the stored index.
func (s *IndexStore) Save(ctx context.Context, idx *domain.Index) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = idx.Clone()
	s.saves++
	return nil
}

// Load returns a copy of the stored index.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, domain.ErrIndexNotFound
	}
	if err := s.index.Validate(); err != nil {
		return nil, err
	}
	return s.index.Clone(), nil
}

// Saves returns how many times Save succeeded.
func (s *IndexStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Location returns ":memory:".
func (s *IndexStore) Location() string {
	return ":memory:"
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}
