package driven

import (
	"context"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// IndexStore persists the complete index as a single unit.
type IndexStore interface {
	// Save replaces any previously persisted index with idx.
	Save(ctx context.Context, idx *domain.Index) error

	// Load returns the persisted index.
	// Returns domain.ErrIndexNotFound when nothing has been saved yet and an
	// error wrapping domain.ErrIndexCorrupt when the data cannot be decoded.
	Load(ctx context.Context) (*domain.Index, error)

	// Location describes where the index lives (path, bucket/key, ...).
	Location() string

	// Close releases resources.
	Close() error
}
