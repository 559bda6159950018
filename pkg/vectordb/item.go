package vectordb

import (
	"github.com/google/uuid"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/types"
)

// Item is a point ready for upsert: a stable ID, the dense and sparse
// vectors, and the chunk payload.
type Item struct {
	ID      string
	Dense   types.EmbeddingVector
	Sparse  types.SparseVector
	Payload map[string]interface{}
}

// pointNamespace makes point UUIDs deterministic per chunk identity so
// re-ingesting a document replaces its points instead of duplicating them
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// NewItemFromChunk builds an Item from a chunk and its vectors. Qdrant
// point IDs must be UUIDs, so the chunk ID and source are hashed into one
// and kept in the payload for retrieval.
func NewItemFromChunk(chunk *chunkers.Chunk, dense types.EmbeddingVector, sparse types.SparseVector) *Item {
	payload := map[string]interface{}{
		"chunk_id":    chunk.ID,
		"text":        chunk.Text,
		"source":      chunk.Source,
		"chunk_index": int64(chunk.ChunkIndex),
	}

	if chunk.StoryTitle != "" {
		payload["story_title"] = chunk.StoryTitle
	}
	if chunk.ChapterIndex != nil {
		payload["chapter_index"] = int64(*chunk.ChapterIndex)
	}
	if chunk.ParagraphRange != nil {
		payload["paragraph_range"] = []interface{}{
			int64(chunk.ParagraphRange.Start),
			int64(chunk.ParagraphRange.End),
		}
	}
	if chunk.CharStart != nil {
		payload["char_start"] = int64(*chunk.CharStart)
	}
	if chunk.CharEnd != nil {
		payload["char_end"] = int64(*chunk.CharEnd)
	}

	return &Item{
		ID:      uuid.NewSHA1(pointNamespace, []byte(chunk.Source+"/"+chunk.ID)).String(),
		Dense:   dense,
		Sparse:  sparse,
		Payload: payload,
	}
}

// HasDense reports whether the item carries a dense vector
func (it *Item) HasDense() bool {
	return len(it.Dense) > 0
}

// HasSparse reports whether the item carries a sparse vector
func (it *Item) HasSparse() bool {
	return !it.Sparse.IsEmpty()
}
