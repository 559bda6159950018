package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/types"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

type fakeEmbedder struct {
	dimension int
	failOn    string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	out := make([]types.EmbeddingVector, len(texts))
	for i, text := range texts {
		if f.failOn != "" && strings.Contains(text, f.failOn) {
			return nil, fmt.Errorf("embedding refused")
		}
		vec := make(types.EmbeddingVector, f.dimension)
		vec[0] = float32(len(text))
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) GetDimension() int { return f.dimension }
func (f *fakeEmbedder) Close() error      { return nil }

type fakeSparse struct{}

// fakeSparse returns an empty vector for texts marked with "@@",
// standing in for stopword-only chunks
func (f *fakeSparse) EmbedCorpus(ctx context.Context, texts []string) ([]types.SparseVector, error) {
	out := make([]types.SparseVector, len(texts))
	for i, text := range texts {
		if strings.Contains(text, "@@") {
			continue
		}
		out[i] = types.SparseVector{Indices: []uint32{0}, Values: []float32{1}}
	}
	return out, nil
}

func (f *fakeSparse) VocabularySize() int { return 1 }

type fakeStore struct {
	vectordb.VectorStore
	mu    sync.Mutex
	items []*vectordb.Item
}

func (f *fakeStore) Upsert(ctx context.Context, collection string, items []*vectordb.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, items...)
	return nil
}

func newTestPipeline(t *testing.T, store *fakeStore) *Pipeline {
	t.Helper()
	p, err := NewPipeline(PipelineOptions{
		Embedder:   &fakeEmbedder{dimension: 4},
		Sparse:     &fakeSparse{},
		Store:      store,
		Collection: "test",
		Kind:       types.EmbeddingKindHybrid,
	})
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fixedStrategy() chunkers.StrategyConfig {
	return chunkers.StrategyConfig{
		Type:      chunkers.ChunkerTypeFixed,
		ChunkSize: 50,
		Overlap:   10,
	}
}

func TestIngestBatchAllSucceed(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	p := newTestPipeline(t, store)

	files := []string{
		writeFile(t, dir, "a.txt", strings.Repeat("alpha text ", 20)),
		writeFile(t, dir, "b.txt", strings.Repeat("bravo text ", 20)),
		writeFile(t, dir, "c.txt", strings.Repeat("charlie text ", 20)),
	}

	result := p.IngestBatch(context.Background(), files, fixedStrategy())

	assert.Equal(t, StatusSuccess, result.Status)
	require.Len(t, result.Files, 3)
	assert.Equal(t, "a.txt", result.Files[0].File)
	assert.Greater(t, result.TotalChunks, 0)
	assert.Len(t, store.items, result.TotalChunks)
}

func TestIngestBatchPartialFailure(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	p := newTestPipeline(t, store)

	files := []string{
		writeFile(t, dir, "good.txt", strings.Repeat("fine content ", 20)),
		filepath.Join(dir, "missing.txt"),
		writeFile(t, dir, "also_good.txt", strings.Repeat("more content ", 20)),
	}

	result := p.IngestBatch(context.Background(), files, fixedStrategy())

	assert.Equal(t, StatusPartial, result.Status)
	require.Len(t, result.Files, 3)
	assert.True(t, result.Files[0].Ok())
	assert.False(t, result.Files[1].Ok())
	assert.Contains(t, result.Files[1].Error, "missing.txt")
	assert.True(t, result.Files[2].Ok())
	assert.Greater(t, result.TotalChunks, 0)
}

func TestIngestBatchAllFail(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	p := newTestPipeline(t, store)

	files := []string{
		filepath.Join(dir, "x.txt"),
		filepath.Join(dir, "y.txt"),
	}

	result := p.IngestBatch(context.Background(), files, fixedStrategy())
	assert.Equal(t, StatusFailed, result.Status)
	assert.Zero(t, result.TotalChunks)
	assert.Empty(t, store.items)
}

func TestIngestBatchEmpty(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(t, store)

	result := p.IngestBatch(context.Background(), nil, fixedStrategy())
	assert.Equal(t, StatusEmpty, result.Status)
}

func TestIngestFileBadStrategy(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	p := newTestPipeline(t, store)

	path := writeFile(t, dir, "doc.txt", "Some content here.")
	result := p.IngestFile(context.Background(), path, chunkers.StrategyConfig{Type: "zigzag"})

	assert.False(t, result.Ok())
	assert.Contains(t, result.Error, "zigzag")
	assert.Empty(t, store.items)
}

func TestIngestSparseOnlySkipsEmptyVectors(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	p, err := NewPipeline(PipelineOptions{
		Sparse:     &fakeSparse{},
		Store:      store,
		Collection: "test",
		Kind:       types.EmbeddingKindSparse,
	})
	require.NoError(t, err)

	path := writeFile(t, dir, "doc.txt", "First paragraph.\n\n@@\n\nThird paragraph.")
	result := p.IngestFile(context.Background(), path, chunkers.StrategyConfig{
		Type: chunkers.ChunkerTypeParagraph,
	})

	require.True(t, result.Ok(), result.Error)
	assert.Equal(t, 2, result.ChunkCount)
	require.Len(t, store.items, 2)
	for _, item := range store.items {
		assert.False(t, item.HasDense())
		assert.True(t, item.HasSparse())
	}
}

func TestNewPipelineValidation(t *testing.T) {
	store := &fakeStore{}

	tests := []struct {
		name string
		opts PipelineOptions
	}{
		{"missing store", PipelineOptions{Collection: "c", Kind: types.EmbeddingKindDense, Embedder: &fakeEmbedder{dimension: 2}}},
		{"missing collection", PipelineOptions{Store: store, Kind: types.EmbeddingKindDense, Embedder: &fakeEmbedder{dimension: 2}}},
		{"bad kind", PipelineOptions{Store: store, Collection: "c", Kind: "fuzzy"}},
		{"hybrid without dense", PipelineOptions{Store: store, Collection: "c", Kind: types.EmbeddingKindHybrid, Sparse: &fakeSparse{}}},
		{"hybrid without sparse", PipelineOptions{Store: store, Collection: "c", Kind: types.EmbeddingKindHybrid, Embedder: &fakeEmbedder{dimension: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01_first.txt", "a")
	writeFile(t, dir, "02_second.txt", "b")
	writeFile(t, dir, "notes.md", "c")

	matches, err := Discover(dir, "*.txt")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "01_first.txt", filepath.Base(matches[0]))
	assert.Equal(t, "02_second.txt", filepath.Base(matches[1]))

	single, err := Discover(dir, "notes.md")
	require.NoError(t, err)
	assert.Len(t, single, 1)

	none, err := Discover(dir, "*.pdf")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWorkerCount(t *testing.T) {
	assert.Equal(t, 1, workerCount(1))
	assert.Equal(t, 1, workerCount(0))
	assert.LessOrEqual(t, workerCount(100), 32)
	assert.LessOrEqual(t, workerCount(5), 5)
}
