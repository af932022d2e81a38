package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

func TestStatsCmd_PrintsSummary(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Location:  project/docs/rag_index.json")
	assert.Contains(t, out, "Model:     nomic-embed-text")
	assert.Contains(t, out, "Chunking:  1000 chars, 200 overlap")
	assert.Contains(t, out, "Chunks:    3")
	assert.Contains(t, out, "Dims:      768")
	assert.Contains(t, out, "README.md")
}

func TestStatsCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := run(t, "stats", "--json")

	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "nomic-embed-text", got["embedding_model"])
	assert.Equal(t, float64(768), got["dimensions"])
	assert.Equal(t, "run-1", got["index_id"])
}

func TestStatsCmd_NoIndex(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.index.summaryErr = domain.ErrIndexNotFound

	out, err := run(t, "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "No index found.")
}

func TestStatsCmd_Corrupt(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.index.summaryErr = domain.ErrIndexCorrupt

	_, err := run(t, "stats")

	assert.ErrorIs(t, err, domain.ErrIndexCorrupt)
}
