package vectordb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/config"
	"github.com/ragtext/ragtext/pkg/types"
)

func TestBaseVectorStoreStatus(t *testing.T) {
	store := NewBaseVectorStore()

	assert.Equal(t, ConnectionStatusDisconnected, store.GetConnectionStatus())
	assert.False(t, store.IsConnected())

	store.SetConnectionStatus(ConnectionStatusConnected)
	assert.True(t, store.IsConnected())

	now := time.Now()
	store.SetLastHealthCheck(now)
	assert.Equal(t, now, store.GetLastHealthCheck())
}

func TestNewQdrantStoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *config.QdrantConfig
		wantErr bool
	}{
		{"valid", &config.QdrantConfig{Host: "localhost", Port: 6334}, false},
		{"nil config", nil, true},
		{"missing host", &config.QdrantConfig{Port: 6334}, true},
		{"zero port", &config.QdrantConfig{Host: "localhost"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewQdrantStore(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, ConnectionStatusDisconnected, store.GetConnectionStatus())
			}
		})
	}
}

func TestNewItemFromChunk(t *testing.T) {
	chapter := 3
	start, end := 0, 120
	chunk := &chunkers.Chunk{
		ID:             "para_slide_chunk_0",
		Source:         "03_a_case_of_identity.txt",
		ChunkIndex:     0,
		Text:           "My dear fellow, said Sherlock Holmes.",
		StoryTitle:     "A Case Of Identity",
		ChapterIndex:   &chapter,
		ParagraphRange: &chunkers.ParagraphRange{Start: 0, End: 2},
		CharStart:      &start,
		CharEnd:        &end,
	}

	dense := types.EmbeddingVector{0.1, 0.2}
	sparse := types.SparseVector{Indices: []uint32{1, 5}, Values: []float32{0.7, 0.3}}

	item := NewItemFromChunk(chunk, dense, sparse)

	_, err := uuid.Parse(item.ID)
	require.NoError(t, err)

	assert.Equal(t, "para_slide_chunk_0", item.Payload["chunk_id"])
	assert.Equal(t, "03_a_case_of_identity.txt", item.Payload["source"])
	assert.Equal(t, int64(0), item.Payload["chunk_index"])
	assert.Equal(t, "A Case Of Identity", item.Payload["story_title"])
	assert.Equal(t, int64(3), item.Payload["chapter_index"])
	assert.Equal(t, []interface{}{int64(0), int64(2)}, item.Payload["paragraph_range"])
	assert.Equal(t, int64(0), item.Payload["char_start"])
	assert.Equal(t, int64(120), item.Payload["char_end"])

	assert.True(t, item.HasDense())
	assert.True(t, item.HasSparse())
}

func TestNewItemFromChunkDeterministicID(t *testing.T) {
	chunk := &chunkers.Chunk{ID: "chunk_1", Source: "doc.txt", Text: "text"}

	first := NewItemFromChunk(chunk, nil, types.SparseVector{})
	second := NewItemFromChunk(chunk, nil, types.SparseVector{})
	assert.Equal(t, first.ID, second.ID)

	other := NewItemFromChunk(&chunkers.Chunk{ID: "chunk_1", Source: "other.txt"}, nil, types.SparseVector{})
	assert.NotEqual(t, first.ID, other.ID)
}

func TestNewItemFromChunkOmitsAbsentProvenance(t *testing.T) {
	chunk := &chunkers.Chunk{ID: "chunk_0", Source: "doc.txt", Text: "plain"}
	item := NewItemFromChunk(chunk, types.EmbeddingVector{1}, types.SparseVector{})

	assert.NotContains(t, item.Payload, "story_title")
	assert.NotContains(t, item.Payload, "chapter_index")
	assert.NotContains(t, item.Payload, "paragraph_range")
	assert.True(t, item.HasDense())
	assert.False(t, item.HasSparse())
}

func TestPayloadValueRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"text":        "some chunk text",
		"chunk_index": int64(4),
		"score":       0.25,
		"flagged":     true,
		"range":       []interface{}{int64(1), int64(3)},
	}

	converted := make(map[string]*qdrant.Value, len(original))
	for key, value := range original {
		converted[key] = convertToPayloadValue(value)
	}

	back := make(map[string]interface{}, len(converted))
	for key, value := range converted {
		back[key] = convertPayloadValue(value)
	}

	assert.Equal(t, original, back)
}

func TestSearchQueryConstruction(t *testing.T) {
	dq := denseQuery(types.EmbeddingVector{0.5, 0.5})
	nearest := dq.GetNearest()
	require.NotNil(t, nearest)
	assert.Equal(t, []float32{0.5, 0.5}, nearest.GetDense().GetData())

	sq := sparseQuery(types.SparseVector{Indices: []uint32{2}, Values: []float32{0.9}})
	sparse := sq.GetNearest().GetSparse()
	require.NotNil(t, sparse)
	assert.Equal(t, []uint32{2}, sparse.GetIndices())
	assert.Equal(t, []float32{0.9}, sparse.GetValues())
}
