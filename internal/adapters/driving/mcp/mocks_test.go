package mcp

import (
	"context"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: query, Status: domain.SearchOK}, nil
	}
	return m.response, nil
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	summary *domain.IndexSummary
	err     error
}

func (m *mockIndexService) Build(_ context.Context, _ domain.BuildOptions) (*domain.IndexReport, error) {
	return &domain.IndexReport{}, m.err
}

func (m *mockIndexService) Summary(_ context.Context) (*domain.IndexSummary, error) {
	return m.summary, m.err
}

func (m *mockIndexService) CheckProvider(_ context.Context) error {
	return m.err
}

func sampleSummary() *domain.IndexSummary {
	return &domain.IndexSummary{
		Metadata: domain.IndexMetadata{
			IndexID:        "run-1",
			ChunkSize:      512,
			ChunkOverlap:   128,
			EmbeddingModel: "nomic-embed-text",
			TotalChunks:    3,
			Dimensions:     768,
		},
		Sources: []domain.SourceCount{
			{Source: "README.md", Chunks: 2},
			{Source: "api.md", Chunks: 1},
		},
		Location: "project/docs/rag_index.json",
	}
}
