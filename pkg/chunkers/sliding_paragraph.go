package chunkers

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ragtext/ragtext/pkg/errors"
)

const (
	// paragraphMergeThreshold merges paragraphs shorter than this many
	// characters into the preceding one, preventing degenerate tiny chunks.
	paragraphMergeThreshold = 30

	// paragraphSeparatorLen accounts for the blank line used when
	// paragraphs are rejoined.
	paragraphSeparatorLen = 2
)

// SlidingParagraphChunker builds chunks by concatenating consecutive
// paragraphs under a character budget, then slides forward by a character
// stride mapped back onto paragraph boundaries. Each chunk records
// provenance derived from the source filename along with its paragraph range
// and approximate character offsets.
type SlidingParagraphChunker struct {
	windowSize int
	stride     int
}

// NewSlidingParagraphChunker creates a paragraph-sliding chunker. windowSize
// is a character budget and stride a character distance; both must be
// positive.
func NewSlidingParagraphChunker(windowSize, stride int) (*SlidingParagraphChunker, error) {
	if windowSize <= 0 {
		return nil, errors.NewConfigError("window_size must be > 0")
	}
	if stride <= 0 {
		return nil, errors.NewConfigError("stride must be > 0")
	}
	return &SlidingParagraphChunker{windowSize: windowSize, stride: stride}, nil
}

// Type returns the strategy identifier of this chunker
func (sp *SlidingParagraphChunker) Type() ChunkerType {
	return ChunkerTypeSlidingParagraph
}

// Chunk splits text into paragraph windows attributed to source
func (sp *SlidingParagraphChunker) Chunk(ctx context.Context, text string, source string) ([]*Chunk, error) {
	chapterIndex, storyTitle := ExtractChapterTitle(source)

	paras := mergeShortParagraphs(SplitParagraphs(text))
	n := len(paras)
	if n == 0 {
		return []*Chunk{}, nil
	}

	// cumulative character offset of each paragraph in the rejoined text
	cumOffsets := make([]int, n)
	offset := 0
	for i, p := range paras {
		cumOffsets[i] = offset
		offset += utf8.RuneCountInString(p) + paragraphSeparatorLen
	}

	chunks := []*Chunk{}
	startPara := 0
	chunkIdx := 0

	for startPara < n {
		// expand endPara while the concatenation stays within the budget;
		// the first paragraph is always included
		endPara := startPara
		built := ""
		for endPara < n {
			candidate := paras[endPara]
			if built != "" {
				candidate = built + "\n\n" + paras[endPara]
			}
			if utf8.RuneCountInString(candidate) > sp.windowSize && endPara > startPara {
				break
			}
			built = candidate
			endPara++
		}

		// a single paragraph over the budget is truncated to the window
		if builtLen := utf8.RuneCountInString(built); builtLen > sp.windowSize {
			built = string([]rune(built)[:sp.windowSize])
		}

		charStart := cumOffsets[startPara]
		charEnd := charStart + utf8.RuneCountInString(built)
		lastPara := endPara - 1
		if lastPara < startPara {
			lastPara = startPara
		}

		chunks = append(chunks, &Chunk{
			ID:             fmt.Sprintf("para_slide_chunk_%d", chunkIdx),
			Source:         source,
			ChunkIndex:     chunkIdx,
			Text:           built,
			StoryTitle:     storyTitle,
			ChapterIndex:   chapterIndex,
			ParagraphRange: &ParagraphRange{Start: startPara, End: lastPara},
			CharStart:      &charStart,
			CharEnd:        &charEnd,
		})
		chunkIdx++

		// advance by stride in characters, snapped to the first paragraph
		// at or past the target offset; fall back to the paragraph after
		// this chunk so the cursor always moves
		targetChar := charStart + sp.stride
		nextPara := -1
		for idx := startPara + 1; idx < n; idx++ {
			if cumOffsets[idx] >= targetChar {
				nextPara = idx
				break
			}
		}
		if nextPara == -1 || nextPara <= startPara {
			nextPara = endPara
		}
		startPara = nextPara
	}

	return chunks, nil
}

// mergeShortParagraphs folds paragraphs under the merge threshold into the
// preceding paragraph. Runs once, before chunking.
func mergeShortParagraphs(paras []string) []string {
	merged := make([]string, 0, len(paras))
	for _, p := range paras {
		if utf8.RuneCountInString(p) < paragraphMergeThreshold && len(merged) > 0 {
			merged[len(merged)-1] = merged[len(merged)-1] + "\n\n" + p
		} else {
			merged = append(merged, p)
		}
	}
	return merged
}
