package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSearchOptions_Limit tests the default result limit
func TestSearchOptions_Limit(t *testing.T) {
	assert.Equal(t, DefaultTopK, SearchOptions{}.Limit())
	assert.Equal(t, DefaultTopK, SearchOptions{TopK: -3}.Limit())
	assert.Equal(t, 3, SearchOptions{TopK: 3}.Limit())
}

// TestDefaultSearchOptions tests that defaults keep every score
func TestDefaultSearchOptions(t *testing.T) {
	opts := DefaultSearchOptions()

	assert.Equal(t, 5, opts.TopK)
	assert.Nil(t, opts.MinScore)
	assert.True(t, opts.Keeps(-1))
}

// TestSearchOptions_WithMinScore tests the score filter
func TestSearchOptions_WithMinScore(t *testing.T) {
	opts := DefaultSearchOptions().WithMinScore(0.5)

	assert.True(t, opts.Keeps(0.5))
	assert.True(t, opts.Keeps(0.9))
	assert.False(t, opts.Keeps(0.49))

	cleared := opts.WithMinScore(-1)
	assert.Nil(t, cleared.MinScore)
	assert.True(t, cleared.Keeps(-0.8))
}

// TestSummarize tests the score summary
func TestSummarize(t *testing.T) {
	assert.Equal(t, ScoreSummary{}, Summarize(nil))

	s := Summarize([]SearchResult{{Score: 0.9}, {Score: 0.5}, {Score: 0.1}})

	assert.InDelta(t, 0.1, s.Min, 1e-9)
	assert.InDelta(t, 0.9, s.Max, 1e-9)
	assert.InDelta(t, 0.5, s.Avg, 1e-9)
}

// TestDocumentChunk_HasEmbedding tests embedding presence
func TestDocumentChunk_HasEmbedding(t *testing.T) {
	assert.False(t, DocumentChunk{}.HasEmbedding())
	assert.False(t, DocumentChunk{Embedding: []float32{}}.HasEmbedding())
	assert.True(t, DocumentChunk{Embedding: []float32{0.1}}.HasEmbedding())
}
