package chunkers

import (
	"context"
	"fmt"
)

// ParagraphChunker emits one chunk per paragraph, in document order, with no
// merging or splitting.
type ParagraphChunker struct{}

// NewParagraphChunker creates a paragraph chunker
func NewParagraphChunker() *ParagraphChunker {
	return &ParagraphChunker{}
}

// Type returns the strategy identifier of this chunker
func (pc *ParagraphChunker) Type() ChunkerType {
	return ChunkerTypeParagraph
}

// Chunk splits text into one chunk per paragraph attributed to source
func (pc *ParagraphChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	paragraphs := SplitParagraphs(text)

	chunks := make([]*Chunk, 0, len(paragraphs))
	for idx, para := range paragraphs {
		chunks = append(chunks, &Chunk{
			ID:         fmt.Sprintf("para_chunk_%d", idx),
			Source:     source,
			ChunkIndex: idx,
			Text:       para,
		})
	}
	return chunks, nil
}
