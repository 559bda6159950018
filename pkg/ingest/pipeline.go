package ingest

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/interfaces"
	"github.com/ragtext/ragtext/pkg/parsers"
	"github.com/ragtext/ragtext/pkg/types"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

// Pipeline chunks files, embeds the chunks, and upserts them into the
// vector store
type Pipeline struct {
	factory    *chunkers.ChunkerFactory
	embedder   interfaces.Embedder
	sparse     interfaces.SparseEmbedder
	store      vectordb.VectorStore
	logger     interfaces.Logger
	collection string
	kind       types.EmbeddingKind
}

// PipelineOptions configures a Pipeline
type PipelineOptions struct {
	Embedder   interfaces.Embedder
	Sparse     interfaces.SparseEmbedder
	Store      vectordb.VectorStore
	Logger     interfaces.Logger
	Collection string
	Kind       types.EmbeddingKind
}

// NewPipeline creates an ingestion pipeline
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.Store == nil {
		return nil, errors.NewConfigError("vector store is required")
	}
	if opts.Collection == "" {
		return nil, errors.NewConfigError("collection name is required")
	}
	if !types.IsValidEmbeddingKind(opts.Kind) {
		return nil, errors.NewConfigError("invalid embedding kind")
	}
	if opts.Kind != types.EmbeddingKindSparse && opts.Embedder == nil {
		return nil, errors.NewConfigError("dense embedder is required for dense and hybrid ingestion")
	}
	if opts.Kind != types.EmbeddingKindDense && opts.Sparse == nil {
		return nil, errors.NewConfigError("sparse embedder is required for sparse and hybrid ingestion")
	}

	return &Pipeline{
		factory:    chunkers.NewChunkerFactory(),
		embedder:   opts.Embedder,
		sparse:     opts.Sparse,
		store:      opts.Store,
		logger:     opts.Logger,
		collection: opts.Collection,
		kind:       opts.Kind,
	}, nil
}

// Discover resolves a source pattern against the data directory. The
// pattern may be a bare filename or a glob; results come back sorted.
func Discover(dataDir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
	if err != nil {
		return nil, errors.NewConfigError("invalid source pattern: " + pattern)
	}
	sort.Strings(matches)
	return matches, nil
}

// workerCount sizes the pool for a batch of n files
func workerCount(n int) int {
	workers := 32
	if n < workers {
		workers = n
	}
	if cpuCap := runtime.NumCPU() * 5; cpuCap < workers {
		workers = cpuCap
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// IngestBatch ingests the files concurrently with per-file isolation: one
// bad file never aborts the batch. Results keep the input file order.
func (p *Pipeline) IngestBatch(ctx context.Context, files []string, strategy chunkers.StrategyConfig) *BatchResult {
	if len(files) == 0 {
		return Summarize(nil)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workerCount(len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.ingestOne(ctx, files[i], strategy)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return Summarize(results)
}

// IngestFile ingests a single file
func (p *Pipeline) IngestFile(ctx context.Context, path string, strategy chunkers.StrategyConfig) FileResult {
	return p.ingestOne(ctx, path, strategy)
}

func (p *Pipeline) ingestOne(ctx context.Context, path string, strategy chunkers.StrategyConfig) FileResult {
	result := FileResult{File: filepath.Base(path)}

	chunks, err := p.chunkFile(ctx, path, strategy)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if len(chunks) == 0 {
		return result
	}

	items, err := p.embedChunks(ctx, chunks)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if err := p.store.Upsert(ctx, p.collection, items); err != nil {
		result.Error = err.Error()
		return result
	}

	result.ChunkCount = len(items)
	if p.logger != nil {
		p.logger.Info("ingested file", map[string]interface{}{
			"file":   result.File,
			"chunks": result.ChunkCount,
		})
	}
	return result
}

func (p *Pipeline) chunkFile(ctx context.Context, path string, strategy chunkers.StrategyConfig) ([]*chunkers.Chunk, error) {
	chunker, err := p.factory.CreateChunker(strategy)
	if err != nil {
		return nil, err
	}

	text, err := parsers.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	return chunker.Chunk(ctx, text, filepath.Base(path))
}

// embedChunks produces the configured vector kinds. Chunks whose sparse
// vector is empty are dropped in sparse-only mode and kept dense-only in
// hybrid mode.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []*chunkers.Chunk) ([]*vectordb.Item, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	var dense []types.EmbeddingVector
	if p.kind != types.EmbeddingKindSparse {
		var err error
		dense, err = p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(dense) != len(chunks) {
			return nil, errors.NewEmbeddingError("dense embedding count mismatch", nil)
		}
	}

	var sparse []types.SparseVector
	if p.kind != types.EmbeddingKindDense {
		var err error
		sparse, err = p.sparse.EmbedCorpus(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(sparse) != len(chunks) {
			return nil, errors.NewEmbeddingError("sparse embedding count mismatch", nil)
		}
	}

	items := make([]*vectordb.Item, 0, len(chunks))
	for i, chunk := range chunks {
		var d types.EmbeddingVector
		var s types.SparseVector
		if dense != nil {
			d = dense[i]
		}
		if sparse != nil {
			s = sparse[i]
		}

		if p.kind == types.EmbeddingKindSparse && s.IsEmpty() {
			if p.logger != nil {
				p.logger.Warn("skipping chunk with empty sparse vector", map[string]interface{}{
					"chunk_id": chunk.ID,
					"source":   chunk.Source,
				})
			}
			continue
		}

		items = append(items, vectordb.NewItemFromChunk(chunk, d, s))
	}

	return items, nil
}
