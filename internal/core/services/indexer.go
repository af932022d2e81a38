package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/core/ports/driving"
	"github.com/custodia-labs/docrag/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// progressEvery is how often embedding progress is reported, in chunks.
const progressEvery = 5

// IndexService builds the index from scratch on every run.
type IndexService struct {
	loader   driven.DocumentLoader
	chunker  driven.Chunker
	embedder *EmbeddingClient
	store    driven.IndexStore
	now      func() time.Time
}

// NewIndexService creates an indexing service.
func NewIndexService(
	loader driven.DocumentLoader,
	chunker driven.Chunker,
	embedder *EmbeddingClient,
	store driven.IndexStore,
) *IndexService {
	return &IndexService{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		now:      time.Now,
	}
}

// Build runs load, chunk and embed sequentially, then saves once.
// Chunks whose embedding fails are skipped and listed in the report.
// Nothing is saved if the context is cancelled or no chunk could be embedded.
func (s *IndexService) Build(ctx context.Context, opts domain.BuildOptions) (*domain.IndexReport, error) {
	start := s.now()
	report := &domain.IndexReport{IndexID: uuid.NewString()}
	emit := func(p domain.IndexProgress) {
		if opts.Progress != nil {
			opts.Progress(p)
		}
	}

	logger.Section("Indexing")
	logger.Debug("Index ID: %s", report.IndexID)

	loaded, err := s.loader.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load documents: %w", err)
	}
	report.Documents = len(loaded.Documents)
	report.Missing = loaded.Missing
	for _, m := range loaded.Missing {
		emit(domain.IndexProgress{Stage: domain.StageMissing, Source: m.Name, Detail: m.Reason})
	}

	var pending []domain.DocumentChunk
	for _, doc := range loaded.Documents {
		emit(domain.IndexProgress{
			Stage:  domain.StageLoaded,
			Source: doc.Name,
			Count:  utf8.RuneCountInString(doc.Content),
		})
		chunks := s.chunker.Process(doc)
		logger.Debug("%s: %d chunks", doc.Name, len(chunks))
		emit(domain.IndexProgress{Stage: domain.StageChunked, Source: doc.Name, Count: len(chunks)})
		pending = append(pending, chunks...)
	}
	report.ChunksGenerated = len(pending)

	logger.Section("Embedding")
	indexed := make([]domain.DocumentChunk, 0, len(pending))
	dims := 0
	for i, chunk := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		vec, err := s.embedder.embed(ctx, chunk.Content)
		if err == nil && dims != 0 && len(vec) != dims {
			err = fmt.Errorf("%w: dimension mismatch (got %d, expected %d)",
				domain.ErrEmbeddingFailure, len(vec), dims)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			logger.Warn("skipping %s chunk %d: %v", chunk.Source, chunk.ChunkIndex, err)
			report.Skipped = append(report.Skipped, domain.SkippedChunk{
				Source:     chunk.Source,
				ChunkIndex: chunk.ChunkIndex,
				Reason:     err.Error(),
			})
			emit(domain.IndexProgress{
				Stage:  domain.StageSkipped,
				Source: chunk.Source,
				Detail: err.Error(),
				Count:  chunk.ChunkIndex,
			})
		} else {
			if dims == 0 {
				dims = len(vec)
			}
			chunk.Embedding = vec
			indexed = append(indexed, chunk)
		}

		processed := i + 1
		if processed%progressEvery == 0 || processed == len(pending) {
			logger.Info("embedded %d/%d chunks", processed, len(pending))
			emit(domain.IndexProgress{Stage: domain.StageEmbedded, Count: processed, Total: len(pending)})
		}
	}
	report.ChunksIndexed = len(indexed)
	report.Dimensions = dims

	if len(pending) > 0 && len(indexed) == 0 {
		return report, fmt.Errorf("%w: none of %d chunks could be embedded, existing index left unchanged",
			domain.ErrEmbeddingFailure, len(pending))
	}

	idx := &domain.Index{
		Chunks: indexed,
		Metadata: domain.IndexMetadata{
			IndexID:        report.IndexID,
			ChunkSize:      s.chunker.ChunkSize(),
			ChunkOverlap:   s.chunker.Overlap(),
			EmbeddingModel: s.embedder.ModelName(),
			TotalChunks:    len(indexed),
			Dimensions:     dims,
			CreatedAt:      s.now().UTC(),
		},
	}

	if err := s.store.Save(ctx, idx); err != nil {
		return report, fmt.Errorf("save index: %w", err)
	}
	report.Saved = true
	report.Location = s.store.Location()
	report.Duration = s.now().Sub(start)

	logger.Info("saved %d chunks to %s", len(indexed), report.Location)
	emit(domain.IndexProgress{Stage: domain.StageSaved, Detail: report.Location, Count: len(indexed)})
	return report, nil
}

// Summary describes the persisted index.
func (s *IndexService) Summary(ctx context.Context) (*domain.IndexSummary, error) {
	idx, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.IndexSummary{
		Metadata: idx.Metadata,
		Sources:  idx.Summarize(),
		Location: s.store.Location(),
	}, nil
}

// CheckProvider pings the embedding provider.
func (s *IndexService) CheckProvider(ctx context.Context) error {
	return s.embedder.Ping(ctx)
}
