package chunkers

import (
	"context"
	"path/filepath"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/interfaces"
)

// StrategyConfig is the tagged configuration for one chunking request. Type
// selects the strategy; only the fields belonging to that strategy are read.
// Hybrid fields are pointers so an explicit zero is distinguishable from an
// omitted value.
type StrategyConfig struct {
	Type ChunkerType `json:"type" binding:"required"`

	// fixed
	ChunkSize int `json:"chunk_size,omitempty"`
	Overlap   int `json:"overlap,omitempty"`

	// sliding_window and sliding_paragraph
	WindowSize int `json:"window_size,omitempty"`
	Stride     int `json:"stride,omitempty"`

	// hybrid
	MaxChars         *int `json:"max_chars,omitempty"`
	MaxSentences     *int `json:"max_sentences,omitempty"`
	OverlapSentences *int `json:"overlap_sentences,omitempty"`
	MinSentences     *int `json:"min_sentences,omitempty"`
}

// ChunkerFactory creates chunkers from strategy configurations
type ChunkerFactory struct{}

// NewChunkerFactory creates a new chunker factory
func NewChunkerFactory() *ChunkerFactory {
	return &ChunkerFactory{}
}

// CreateChunker constructs the chunker selected by config.Type with the
// validated parameters. Unknown types yield an unsupported-strategy error;
// invalid parameters yield a configuration error. No chunks are ever emitted
// for either.
func (cf *ChunkerFactory) CreateChunker(config StrategyConfig) (Chunker, error) {
	switch config.Type {
	case ChunkerTypeFixed:
		return NewFixedChunker(config.ChunkSize, config.Overlap)

	case ChunkerTypeSentence:
		return NewSentenceChunker(), nil

	case ChunkerTypeParagraph:
		return NewParagraphChunker(), nil

	case ChunkerTypeSlidingWindow:
		return NewSlidingWindowChunker(config.WindowSize, config.Stride)

	case ChunkerTypeSlidingParagraph:
		return NewSlidingParagraphChunker(config.WindowSize, config.Stride)

	case ChunkerTypeHybrid:
		return NewHybridChunker(
			intOrDefault(config.MaxChars, DefaultHybridMaxChars),
			intOrDefault(config.MaxSentences, DefaultHybridMaxSentences),
			intOrDefault(config.OverlapSentences, DefaultHybridOverlapSentences),
			intOrDefault(config.MinSentences, DefaultHybridMinSentences),
		)

	default:
		return nil, errors.NewUnsupportedStrategyError(string(config.Type))
	}
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Dispatcher selects, configures, and runs a chunker against a text source.
type Dispatcher struct {
	factory *ChunkerFactory
	logger  interfaces.Logger
}

// NewDispatcher creates a dispatcher logging through logger
func NewDispatcher(logger interfaces.Logger) *Dispatcher {
	return &Dispatcher{
		factory: NewChunkerFactory(),
		logger:  logger,
	}
}

// ChunkFile reads path tolerantly and runs the configured strategy over its
// text, returning the chunker's ordered chunk sequence unchanged. Source on
// the emitted chunks is the file's base name.
func (d *Dispatcher) ChunkFile(ctx context.Context, config StrategyConfig, path string) ([]*Chunk, error) {
	d.logger.Info("processing chunk request", map[string]interface{}{
		"strategy": config.Type,
		"path":     path,
	})

	chunker, err := d.factory.CreateChunker(config)
	if err != nil {
		d.logger.Error("chunker construction failed", err, map[string]interface{}{
			"strategy": config.Type,
		})
		return nil, err
	}

	text, err := ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	chunks, err := chunker.Chunk(ctx, text, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	d.logger.Info("chunk processing finished", map[string]interface{}{
		"path":   path,
		"chunks": len(chunks),
	})
	return chunks, nil
}

