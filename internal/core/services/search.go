package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/core/ports/driving"
	"github.com/custodia-labs/docrag/internal/logger"
	"github.com/custodia-labs/docrag/internal/vector"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks every stored chunk against the query.
// It holds no index state between calls.
type SearchService struct {
	store    driven.IndexStore
	embedder *EmbeddingClient
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.IndexStore, embedder *EmbeddingClient) *SearchService {
	return &SearchService{
		store:    store,
		embedder: embedder,
	}
}

// Search loads the index, embeds the query and returns the best matches.
// A missing index or unavailable query embedding yields an empty response
// with the matching Status and a nil error. A corrupt index is an error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	resp := &domain.SearchResponse{
		Query:   query,
		Status:  domain.SearchOK,
		Results: []domain.SearchResult{},
	}

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return resp, nil
	}

	idx, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			logger.Info("No index at %s", s.store.Location())
			resp.Status = domain.SearchNoIndex
			return resp, nil
		}
		return nil, fmt.Errorf("load index: %w", err)
	}
	logger.Debug("Loaded %d chunks (model %s)", len(idx.Chunks), idx.Metadata.EmbeddingModel)

	if model := s.embedder.ModelName(); model != "" && idx.Metadata.EmbeddingModel != "" &&
		model != idx.Metadata.EmbeddingModel {
		logger.Warn("index was built with %q but queries use %q; scores may be meaningless",
			idx.Metadata.EmbeddingModel, model)
	}

	queryVec := s.embedder.Embed(ctx, query)
	if queryVec == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Warn("could not embed query, returning no results")
		resp.Status = domain.SearchEmbeddingUnavailable
		return resp, nil
	}
	if d := idx.Metadata.Dimensions; d != 0 && d != len(queryVec) {
		logger.Warn("query has %d dimensions, index has %d; every score will be 0", len(queryVec), d)
	}

	resp.Results = Rank(idx.Chunks, queryVec, opts)
	resp.Scanned = len(idx.Chunks)
	resp.Scores = domain.Summarize(resp.Results)

	logger.Info("Final results: %d of %d chunks", len(resp.Results), resp.Scanned)
	return resp, nil
}

// Rank scores every chunk against query by cosine similarity, orders them
// by descending score keeping storage order for ties, drops scores below
// opts.MinScore and returns at most opts.Limit() results.
func Rank(chunks []domain.DocumentChunk, query []float32, opts domain.SearchOptions) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(chunks))
	for _, c := range chunks {
		score := vector.Cosine(query, c.Embedding)
		if !opts.Keeps(score) {
			continue
		}
		results = append(results, domain.SearchResult{
			Content:    c.Content,
			Source:     c.Source,
			ChunkIndex: c.ChunkIndex,
			Score:      score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit := opts.Limit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}
