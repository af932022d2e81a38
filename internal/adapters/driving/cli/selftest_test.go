package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/core/domain"
)

func TestTestCmd_RunsDefaultQueries(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.config.Test.Queries = nil

	out, err := run(t, "test")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultTestQueries, ts.search.queries)
	for _, q := range config.DefaultTestQueries {
		assert.Contains(t, out, "Query: "+q)
	}
	for _, o := range ts.search.opts {
		assert.Equal(t, 3, o.TopK)
	}
}

func TestTestCmd_ConfiguredQueries(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.config.Test.Queries = []string{"one", "two"}
	ts.config.Test.TopK = 1

	_, err := run(t, "test")

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, ts.search.queries)
	assert.Equal(t, 1, ts.search.opts[0].TopK)
}

func TestTestCmd_ShortPreview(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.config.Test.Queries = []string{"long"}
	ts.search.resp = &domain.SearchResponse{
		Status:  domain.SearchOK,
		Results: []domain.SearchResult{{Content: strings.Repeat("x", 300), Source: "README.md", Score: 0.9}},
	}

	out, err := run(t, "test")

	require.NoError(t, err)
	assert.Contains(t, out, strings.Repeat("x", testPreviewRunes)+"...")
	assert.NotContains(t, out, strings.Repeat("x", testPreviewRunes+1))
}

func TestTestCmd_StopsWithoutIndex(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.search.resp = &domain.SearchResponse{Status: domain.SearchNoIndex}

	out, err := run(t, "test")

	require.NoError(t, err)
	assert.Len(t, ts.search.queries, 1)
	assert.Equal(t, 1, strings.Count(out, "No index found."))
}
