// Package interfaces defines the contracts shared across ragtext packages
package interfaces

import (
	"context"

	"github.com/ragtext/ragtext/pkg/types"
)

// Logger defines the interface for logging implementations
type Logger interface {
	// Debug logs debug level messages
	Debug(msg string, fields ...map[string]interface{})

	// Info logs info level messages
	Info(msg string, fields ...map[string]interface{})

	// Warn logs warning level messages
	Warn(msg string, fields ...map[string]interface{})

	// Error logs error level messages
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs fatal level messages and exits
	Fatal(msg string, err error, fields ...map[string]interface{})

	// WithFields returns a logger with additional fields
	WithFields(fields map[string]interface{}) Logger
}

// Embedder defines the interface for dense embedding implementations
type Embedder interface {
	// Embed generates an embedding for text
	Embed(ctx context.Context, text string) (types.EmbeddingVector, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error)

	// GetDimension returns the embedding dimension
	GetDimension() int

	// Close closes the embedder
	Close() error
}

// SparseEmbedder defines the interface for sparse (lexical) embedding
// implementations. Unlike a dense Embedder, a sparse embedder is fit on
// the batch it embeds, so the whole corpus goes in at once.
type SparseEmbedder interface {
	// EmbedCorpus fits on the corpus and returns one sparse vector per text
	EmbedCorpus(ctx context.Context, texts []string) ([]types.SparseVector, error)

	// VocabularySize returns the number of distinct terms after fitting
	VocabularySize() int
}

// ChatModel defines the interface for answer-generating LLM backends
type ChatModel interface {
	// Generate produces a completion for the given system and user prompts
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Close closes the model connection
	Close() error
}
