package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query    string   `json:"query" jsonschema:"the question or phrase to look up in the documentation"`
	TopK     int      `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	MinScore *float64 `json:"min_score,omitempty" jsonschema:"drop results with cosine similarity below this value"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	// Status is ok, no_index or embedding_unavailable.
	Status  string               `json:"status"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
	Scanned int                  `json:"scanned"`
}

// SearchResultOutput represents a single ranked chunk.
type SearchResultOutput struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Content    string  `json:"content"`
}

// IndexInfoInput is the empty input of the index_info tool.
type IndexInfoInput struct{}

// IndexInfoOutput describes the persisted index.
type IndexInfoOutput struct {
	Exists         bool                `json:"exists"`
	Location       string              `json:"location,omitempty"`
	IndexID        string              `json:"index_id,omitempty"`
	EmbeddingModel string              `json:"embedding_model,omitempty"`
	ChunkSize      int                 `json:"chunk_size,omitempty"`
	ChunkOverlap   int                 `json:"chunk_overlap,omitempty"`
	TotalChunks    int                 `json:"total_chunks"`
	Dimensions     int                 `json:"dimensions,omitempty"`
	CreatedAt      string              `json:"created_at,omitempty"`
	Sources        []SourceCountOutput `json:"sources,omitempty"`
}

// SourceCountOutput is the chunk count of one source.
type SourceCountOutput struct {
	Source string `json:"source"`
	Chunks int    `json:"chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the project documentation by semantic similarity",
	}, s.handleSearch)

	if s.ports.Index != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "index_info",
			Description: "Describe the documentation index: model, chunking and chunk counts per source",
		}, s.handleIndexInfo)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, domain.ErrInvalidInput
	}

	opts := domain.SearchOptions{TopK: input.TopK}
	if input.MinScore != nil {
		opts = opts.WithMinScore(*input.MinScore)
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Status:  string(resp.Status),
		Results: make([]SearchResultOutput, len(resp.Results)),
		Count:   len(resp.Results),
		Scanned: resp.Scanned,
	}

	for i := range resp.Results {
		output.Results[i] = SearchResultOutput{
			Source:     resp.Results[i].Source,
			ChunkIndex: resp.Results[i].ChunkIndex,
			Score:      resp.Results[i].Score,
			Content:    resp.Results[i].Content,
		}
	}

	return nil, output, nil
}

// handleIndexInfo handles the index_info tool invocation.
// A missing index is reported with Exists false rather than an error.
func (s *Server) handleIndexInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IndexInfoInput,
) (*mcp.CallToolResult, IndexInfoOutput, error) {
	info, err := s.indexInfo(ctx)
	if err != nil {
		return nil, IndexInfoOutput{}, err
	}
	return nil, info, nil
}

func (s *Server) indexInfo(ctx context.Context) (IndexInfoOutput, error) {
	if s.ports.Index == nil {
		return IndexInfoOutput{}, ErrMissingIndexService
	}

	summary, err := s.ports.Index.Summary(ctx)
	if err != nil {
		if isNotFound(err) {
			return IndexInfoOutput{Exists: false}, nil
		}
		return IndexInfoOutput{}, err
	}

	meta := summary.Metadata
	out := IndexInfoOutput{
		Exists:         true,
		Location:       summary.Location,
		IndexID:        meta.IndexID,
		EmbeddingModel: meta.EmbeddingModel,
		ChunkSize:      meta.ChunkSize,
		ChunkOverlap:   meta.ChunkOverlap,
		TotalChunks:    meta.TotalChunks,
		Dimensions:     meta.Dimensions,
		Sources:        make([]SourceCountOutput, len(summary.Sources)),
	}
	if !meta.CreatedAt.IsZero() {
		out.CreatedAt = meta.CreatedAt.UTC().Format(time.RFC3339)
	}
	for i, sc := range summary.Sources {
		out.Sources[i] = SourceCountOutput{Source: sc.Source, Chunks: sc.Chunks}
	}
	return out, nil
}
