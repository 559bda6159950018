package chunkers

import (
	"context"
	"fmt"

	"github.com/ragtext/ragtext/pkg/errors"
)

// SlidingWindowChunker emits windows of up to windowSize characters and
// advances the cursor by exactly stride each iteration. Unlike the fixed
// chunker, stride is independent of the window size: a stride larger than
// the window leaves gaps, a smaller one overlaps.
type SlidingWindowChunker struct {
	windowSize int
	stride     int
}

// NewSlidingWindowChunker creates a sliding-window chunker. Both windowSize
// and stride must be positive.
func NewSlidingWindowChunker(windowSize, stride int) (*SlidingWindowChunker, error) {
	if windowSize <= 0 {
		return nil, errors.NewConfigError("window_size must be > 0")
	}
	if stride <= 0 {
		return nil, errors.NewConfigError("stride must be > 0")
	}
	return &SlidingWindowChunker{windowSize: windowSize, stride: stride}, nil
}

// Type returns the strategy identifier of this chunker
func (sw *SlidingWindowChunker) Type() ChunkerType {
	return ChunkerTypeSlidingWindow
}

// Chunk splits text into sliding-window chunks attributed to source
func (sw *SlidingWindowChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	runes := []rune(text)
	textLen := len(runes)

	chunks := []*Chunk{}
	start := 0
	chunkIdx := 0

	for start < textLen {
		end := start + sw.windowSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, &Chunk{
			ID:         fmt.Sprintf("slide_chunk_%d", chunkIdx),
			Source:     source,
			ChunkIndex: chunkIdx,
			Text:       string(runes[start:end]),
		})
		chunkIdx++

		start += sw.stride
	}

	return chunks, nil
}
