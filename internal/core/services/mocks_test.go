package services

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
)

// mockEmbedding is a testify mock of the embedding provider.
type mockEmbedding struct {
	mock.Mock
}

var _ driven.EmbeddingService = (*mockEmbedding)(nil)

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if v := args.Get(0); v != nil {
		return v.([]float32), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmbedding) ModelName() string {
	return m.Called().String(0)
}

func (m *mockEmbedding) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockEmbedding) Close() error {
	return nil
}

// funcEmbedding embeds with a plain function.
type funcEmbedding struct {
	model string
	fn    func(ctx context.Context, text string) ([]float32, error)
}

func (f *funcEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.fn(ctx, text)
}

func (f *funcEmbedding) ModelName() string { return f.model }
func (f *funcEmbedding) Ping(context.Context) error { return nil }
func (f *funcEmbedding) Close() error { return nil }

// keywordEmbedding maps text onto a 3-dimensional space by keyword.
func keywordEmbedding() *funcEmbedding {
	return &funcEmbedding{
		model: "test-model",
		fn: func(_ context.Context, text string) ([]float32, error) {
			v := []float32{0, 0, 0}
			if strings.Contains(text, "alpha") {
				v[0] = 1
			}
			if strings.Contains(text, "beta") {
				v[1] = 1
			}
			if strings.Contains(text, "gamma") {
				v[2] = 1
			}
			if v[0] == 0 && v[1] == 0 && v[2] == 0 {
				v[2] = 0.1
			}
			return v, nil
		},
	}
}

// stubLoader returns a fixed result.
type stubLoader struct {
	result *domain.LoadResult
	err    error
}

func (l *stubLoader) Load(context.Context) (*domain.LoadResult, error) {
	return l.result, l.err
}

// lineChunker emits one chunk per line.
type lineChunker struct{}

func (lineChunker) Process(doc domain.SourceDocument) []domain.DocumentChunk {
	var chunks []domain.DocumentChunk
	for i, line := range strings.Split(doc.Content, "\n") {
		chunks = append(chunks, domain.DocumentChunk{Content: line, Source: doc.Name, ChunkIndex: i})
	}
	return chunks
}

func (lineChunker) ChunkSize() int { return 512 }
func (lineChunker) Overlap() int { return 128 }
