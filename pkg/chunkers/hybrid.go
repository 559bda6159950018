package chunkers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ragtext/ragtext/pkg/errors"
)

// Hybrid chunker defaults
const (
	DefaultHybridMaxChars         = 1000
	DefaultHybridMaxSentences     = 10
	DefaultHybridOverlapSentences = 1
	DefaultHybridMinSentences     = 1
)

// HybridChunker groups consecutive sentences into chunks bounded by both a
// character budget and a sentence-count budget, with sentence-granularity
// overlap between chunks. The character budget only closes a chunk once it
// holds at least minSentences sentences, so a chunk can exceed maxChars when
// minSentences > 1 and early sentences are long; that tie-break is kept
// deliberately.
type HybridChunker struct {
	maxChars         int
	maxSentences     int
	overlapSentences int
	minSentences     int
}

// NewHybridChunker creates a hybrid sentence-grouping chunker.
func NewHybridChunker(maxChars, maxSentences, overlapSentences, minSentences int) (*HybridChunker, error) {
	if maxChars <= 0 {
		return nil, errors.NewConfigError("max_chars must be > 0")
	}
	if maxSentences <= 0 {
		return nil, errors.NewConfigError("max_sentences must be > 0")
	}
	if overlapSentences < 0 {
		return nil, errors.NewConfigError("overlap_sentences must be >= 0")
	}
	if minSentences < 1 {
		return nil, errors.NewConfigError("min_sentences must be >= 1")
	}
	return &HybridChunker{
		maxChars:         maxChars,
		maxSentences:     maxSentences,
		overlapSentences: overlapSentences,
		minSentences:     minSentences,
	}, nil
}

// Type returns the strategy identifier of this chunker
func (hc *HybridChunker) Type() ChunkerType {
	return ChunkerTypeHybrid
}

// Chunk splits text into sentence groups attributed to source
func (hc *HybridChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	sentences := SplitSentences(text)
	total := len(sentences)

	chunks := []*Chunk{}
	i := 0
	chunkIdx := 0

	for i < total {
		var current []string
		currentChars := 0
		count := 0
		j := i

		for j < total {
			sentLen := utf8.RuneCountInString(sentences[j])
			// stop when either budget would be exceeded; the character
			// budget only applies once the chunk holds min_sentences
			if count+1 > hc.maxSentences ||
				(currentChars+sentLen > hc.maxChars && count >= hc.minSentences) {
				break
			}
			current = append(current, sentences[j])
			currentChars += sentLen + 1 // +1 for the joining space
			count++
			j++
		}

		// a single sentence over both budgets is force-included so the
		// cursor always advances
		if count == 0 && j < total {
			current = append(current, sentences[j])
			j++
			count = 1
		}

		chunks = append(chunks, &Chunk{
			ID:         newHybridChunkID(),
			Source:     source,
			ChunkIndex: chunkIdx,
			Text:       strings.TrimSpace(strings.Join(current, " ")),
		})
		chunkIdx++

		// step back by the sentence overlap, never behind the current start
		nextStart := j - hc.overlapSentences
		if nextStart <= i {
			nextStart = j
		}
		i = nextStart
	}

	return chunks, nil
}

func newHybridChunkID() string {
	id := uuid.New()
	return fmt.Sprintf("hyb_%x", id[:4])
}
