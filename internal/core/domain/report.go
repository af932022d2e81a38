package domain

import "time"

// SkippedChunk identifies a chunk that was left out of the index.
type SkippedChunk struct {
	Source     string
	ChunkIndex int
	Reason     string
}

// IndexReport summarises an indexing run.
type IndexReport struct {
	IndexID   string
	Documents int
	Missing   []MissingSource

	// ChunksGenerated counts every window the chunker produced.
	ChunksGenerated int

	// ChunksIndexed counts windows persisted with an embedding.
	ChunksIndexed int

	Skipped    []SkippedChunk
	Dimensions int

	// Saved is false when the run stopped before persisting.
	Saved    bool
	Location string
	Duration time.Duration
}

// ProgressStage names a step of an indexing run.
type ProgressStage string

const (
	StageLoaded   ProgressStage = "loaded"
	StageMissing  ProgressStage = "missing"
	StageChunked  ProgressStage = "chunked"
	StageEmbedded ProgressStage = "embedded"
	StageSkipped  ProgressStage = "skipped"
	StageSaved    ProgressStage = "saved"
)

// IndexProgress is emitted as an indexing run advances.
type IndexProgress struct {
	Stage ProgressStage

	// Source is the document the event is about, if any.
	Source string

	// Detail carries a reason or location.
	Detail string

	// Count is stage specific: content length for loaded, chunk count
	// for chunked, chunks processed so far for embedded.
	Count int

	// Total is the number of chunks to embed.
	Total int
}

// BuildOptions configures an indexing run.
type BuildOptions struct {
	// Progress receives events in order. May be nil.
	Progress func(IndexProgress)
}
