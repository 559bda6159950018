package chunkers

import (
	"context"
	"fmt"
)

// SentenceChunker emits one chunk per sentence, in document order, with no
// merging or splitting.
type SentenceChunker struct{}

// NewSentenceChunker creates a sentence chunker
func NewSentenceChunker() *SentenceChunker {
	return &SentenceChunker{}
}

// Type returns the strategy identifier of this chunker
func (sc *SentenceChunker) Type() ChunkerType {
	return ChunkerTypeSentence
}

// Chunk splits text into one chunk per sentence attributed to source
func (sc *SentenceChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	sentences := SplitSentences(text)

	chunks := make([]*Chunk, 0, len(sentences))
	for idx, sentence := range sentences {
		chunks = append(chunks, &Chunk{
			ID:         fmt.Sprintf("sent_chunk_%d", idx),
			Source:     source,
			ChunkIndex: idx,
			Text:       sentence,
		})
	}
	return chunks, nil
}
