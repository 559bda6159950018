package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtext/ragtext/pkg/types"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

type stubEmbedder struct{}

func (s *stubEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	return types.EmbeddingVector{0.1, 0.2, 0.3}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	out := make([]types.EmbeddingVector, len(texts))
	for i := range texts {
		out[i] = types.EmbeddingVector{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (s *stubEmbedder) GetDimension() int { return 3 }
func (s *stubEmbedder) Close() error      { return nil }

type stubStore struct {
	vectordb.VectorStore
	lastQuery vectordb.SearchQuery
	results   []types.VectorSearchResult
}

func (s *stubStore) Search(ctx context.Context, collection string, query vectordb.SearchQuery) ([]types.VectorSearchResult, error) {
	s.lastQuery = query
	return s.results, nil
}

type stubModel struct {
	lastSystem string
	lastUser   string
}

func (s *stubModel) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	return "It was the speckled band.", nil
}

func (s *stubModel) Close() error { return nil }

func sampleResults() []types.VectorSearchResult {
	return []types.VectorSearchResult{
		{ID: "1", Score: 0.9, Payload: map[string]interface{}{
			"text":   "The band! The speckled band!",
			"source": "08_speckled_band.txt",
		}},
		{ID: "2", Score: 0.7, Payload: map[string]interface{}{
			"text":   "A swamp adder, the deadliest snake in India.",
			"source": "08_speckled_band.txt",
		}},
	}
}

func newTestService(t *testing.T, store *stubStore, model *stubModel) *Service {
	t.Helper()
	opts := ServiceOptions{
		Embedder:   &stubEmbedder{},
		Store:      store,
		Collection: "test",
		TopK:       5,
	}
	if model != nil {
		opts.Model = model
	}
	svc, err := NewService(opts)
	require.NoError(t, err)
	return svc
}

func TestServiceSearchUsesDenseVectorOnly(t *testing.T) {
	store := &stubStore{results: sampleResults()}
	svc := newTestService(t, store, nil)

	results, err := svc.Search(context.Background(), "what killed her", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	assert.Equal(t, types.EmbeddingVector{0.1, 0.2, 0.3}, store.lastQuery.Dense)
	assert.True(t, store.lastQuery.Sparse.IsEmpty())
	assert.Equal(t, 2, store.lastQuery.Limit)
}

func TestServiceSearchDefaultsLimit(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, nil)

	_, err := svc.Search(context.Background(), "question", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, store.lastQuery.Limit)
}

func TestServiceSearchRejectsEmptyQuery(t *testing.T) {
	svc := newTestService(t, &stubStore{}, nil)

	_, err := svc.Search(context.Background(), "   ", 3)
	assert.Error(t, err)
}

func TestServiceAsk(t *testing.T) {
	store := &stubStore{results: sampleResults()}
	model := &stubModel{}
	svc := newTestService(t, store, model)

	answer, err := svc.Ask(context.Background(), "What killed Julia Stoner?", 2)
	require.NoError(t, err)

	assert.Equal(t, "It was the speckled band.", answer.Text)
	assert.Len(t, answer.Sources, 2)

	assert.Contains(t, model.lastSystem, "provided context")
	assert.Contains(t, model.lastUser, "The band! The speckled band!")
	assert.Contains(t, model.lastUser, "Question: What killed Julia Stoner?")
}

func TestServiceAskWithoutModel(t *testing.T) {
	svc := newTestService(t, &stubStore{}, nil)

	_, err := svc.Ask(context.Background(), "question", 1)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("who did it", sampleResults())

	assert.Contains(t, prompt, "[1] (08_speckled_band.txt) The band! The speckled band!")
	assert.Contains(t, prompt, "[2] (08_speckled_band.txt) A swamp adder")
	assert.Contains(t, prompt, "Question: who did it")
}

func TestBuildPromptNoResults(t *testing.T) {
	prompt := BuildPrompt("anything", nil)
	assert.Contains(t, prompt, "Question: anything")
}
