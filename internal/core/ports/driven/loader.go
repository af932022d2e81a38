package driven

import (
	"context"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// DocumentLoader reads the configured documentation sources.
// Missing or unreadable sources are reported in the result, not as errors.
type DocumentLoader interface {
	Load(ctx context.Context) (*domain.LoadResult, error)
}

// SourceWatcher notifies when any configured source changes.
type SourceWatcher interface {
	// Watch blocks until ctx is done, calling onChange after each burst of
	// changes. Calls are sequential.
	Watch(ctx context.Context, onChange func()) error
}
