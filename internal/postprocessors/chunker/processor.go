// Package chunker splits document text into fixed-size overlapping windows.
package chunker

import (
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 128

// Processor turns source documents into chunk records.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker processor. It fails with domain.ErrInvalidChunking
// when the configured windows could not advance through the text.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := Validate(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// ChunkSize returns the window length in characters.
func (p *Processor) ChunkSize() int { return p.chunkSize }

// Overlap returns the shared characters between adjacent windows.
func (p *Processor) Overlap() int { return p.overlap }

// Process splits the document content into chunk records numbered from 0.
// Empty content produces no chunks.
func (p *Processor) Process(doc domain.SourceDocument) []domain.DocumentChunk {
	windows := split(doc.Content, p.chunkSize, p.overlap)
	if len(windows) == 0 {
		return nil
	}

	chunks := make([]domain.DocumentChunk, len(windows))
	for i, w := range windows {
		chunks[i] = domain.DocumentChunk{
			Content:    w,
			Source:     doc.Name,
			ChunkIndex: i,
		}
	}
	return chunks
}

// Validate checks that chunkSize and overlap describe a window that advances.
func Validate(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", domain.ErrInvalidChunking, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap %d must not be negative", domain.ErrInvalidChunking, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap %d, chunk size %d", domain.ErrInvalidChunking, overlap, chunkSize)
	}
	return nil
}

// Split cuts text into windows of chunkSize characters, each starting
// chunkSize-overlap characters after the previous one. The final window may
// be shorter, and text no longer than chunkSize is a single window. Lengths
// count runes, so multi-byte characters stay intact.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if err := Validate(chunkSize, overlap); err != nil {
		return nil, err
	}
	return split(text, chunkSize, overlap), nil
}

func split(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}

	// offsets[i] is the byte offset of rune i; the extra entry marks the end.
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	runeCount := len(offsets)
	offsets = append(offsets, len(text))

	if runeCount <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	chunks := make([]string, 0, runeCount/step+1)

	for start := 0; start < runeCount; start += step {
		end := start + chunkSize
		if end > runeCount {
			end = runeCount
		}
		chunks = append(chunks, text[offsets[start]:offsets[end]])
	}

	return chunks
}
