// Package chunkers provides the text chunking subsystem for ragtext
package chunkers

import (
	"context"
)

// Chunk represents a retrieval-sized span of source text produced by a
// chunking strategy. Provenance fields are only populated by the
// paragraph-sliding strategy.
type Chunk struct {
	// ID is unique per chunk within one file-processing run
	ID string `json:"id"`

	// Source is the filename the chunk was derived from
	Source string `json:"source"`

	// ChunkIndex is the zero-based order of emission
	ChunkIndex int `json:"chunk_index"`

	// Text is the chunk's textual content
	Text string `json:"text"`

	// StoryTitle is the human-readable title derived from the filename
	StoryTitle string `json:"story_title,omitempty"`

	// ChapterIndex is the numeric filename prefix, when present
	ChapterIndex *int `json:"chapter_index,omitempty"`

	// ParagraphRange holds inclusive start/end paragraph indices
	ParagraphRange *ParagraphRange `json:"paragraph_range,omitempty"`

	// CharStart is the approximate absolute character offset of the
	// chunk's first paragraph in the source text
	CharStart *int `json:"char_start,omitempty"`

	// CharEnd is CharStart plus the length of the built text
	CharEnd *int `json:"char_end,omitempty"`
}

// ParagraphRange is an inclusive range of paragraph indices
type ParagraphRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Chunker defines the interface for all chunking strategy implementations
type Chunker interface {
	// Chunk splits text into ordered chunks attributed to source
	Chunk(ctx context.Context, text string, source string) ([]*Chunk, error)

	// Type returns the strategy identifier of this chunker
	Type() ChunkerType
}

// ChunkerType represents the chunking strategies
type ChunkerType string

const (
	// ChunkerTypeFixed splits text into overlapping fixed-length character windows
	ChunkerTypeFixed ChunkerType = "fixed"

	// ChunkerTypeSentence emits one chunk per sentence
	ChunkerTypeSentence ChunkerType = "sentence"

	// ChunkerTypeParagraph emits one chunk per paragraph
	ChunkerTypeParagraph ChunkerType = "paragraph"

	// ChunkerTypeSlidingWindow emits character windows advanced by an independent stride
	ChunkerTypeSlidingWindow ChunkerType = "sliding_window"

	// ChunkerTypeSlidingParagraph groups paragraphs under a character budget
	// and slides by a character stride mapped to paragraph boundaries
	ChunkerTypeSlidingParagraph ChunkerType = "sliding_paragraph"

	// ChunkerTypeHybrid groups sentences under character and sentence-count budgets
	ChunkerTypeHybrid ChunkerType = "hybrid"
)

// SupportedChunkerTypes returns all supported chunker types
func SupportedChunkerTypes() []ChunkerType {
	return []ChunkerType{
		ChunkerTypeFixed,
		ChunkerTypeSentence,
		ChunkerTypeParagraph,
		ChunkerTypeSlidingWindow,
		ChunkerTypeSlidingParagraph,
		ChunkerTypeHybrid,
	}
}

// IsValidChunkerType checks if a chunker type is supported
func IsValidChunkerType(chunkerType ChunkerType) bool {
	for _, supported := range SupportedChunkerTypes() {
		if supported == chunkerType {
			return true
		}
	}
	return false
}
