package driving

import (
	"context"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search ranks indexed chunks by similarity to query.
	// A missing index or failed query embedding is reported through
	// SearchResponse.Status with a nil error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)
}
