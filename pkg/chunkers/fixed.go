package chunkers

import (
	"context"
	"fmt"

	"github.com/ragtext/ragtext/pkg/errors"
)

// FixedChunker splits text into overlapping fixed-length character windows.
// The next window starts overlap characters before the previous end; when
// that would not advance the cursor it is forced to the previous end so the
// loop always terminates.
type FixedChunker struct {
	chunkSize int
	overlap   int
}

// NewFixedChunker creates a fixed-size chunker. chunkSize must be positive
// and overlap must be in [0, chunkSize).
func NewFixedChunker(chunkSize, overlap int) (*FixedChunker, error) {
	if chunkSize <= 0 {
		return nil, errors.NewConfigError("chunk_size must be > 0")
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, errors.NewConfigError("overlap must be >= 0 and < chunk_size")
	}
	return &FixedChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Type returns the strategy identifier of this chunker
func (fc *FixedChunker) Type() ChunkerType {
	return ChunkerTypeFixed
}

// Chunk splits text into fixed-size chunks attributed to source
func (fc *FixedChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	runes := []rune(text)
	textLen := len(runes)

	chunks := []*Chunk{}
	start := 0
	chunkIdx := 0

	for start < textLen {
		end := start + fc.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, &Chunk{
			ID:         fmt.Sprintf("chunk_%d", chunkIdx),
			Source:     source,
			ChunkIndex: chunkIdx,
			Text:       string(runes[start:end]),
		})
		chunkIdx++

		// the final window ends the pass; stepping back by overlap here
		// would emit a trailing chunk made only of already-covered text
		if end == textLen {
			break
		}

		// advance with overlap, ensure progress
		nextStart := end - fc.overlap
		if nextStart <= start {
			nextStart = end
		}
		start = nextStart
	}

	return chunks, nil
}
