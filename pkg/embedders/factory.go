package embedders

import (
	"fmt"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/interfaces"
)

// Supported embedder providers
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// NewEmbedder creates a dense embedder for the configured provider
func NewEmbedder(config *EmbedderConfig) (interfaces.Embedder, error) {
	if config == nil {
		return nil, errors.NewConfigError("embedder config cannot be nil")
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIEmbedder(config)
	case ProviderOllama:
		return NewOllamaEmbedder(config)
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("unsupported embedder provider: %s", config.Provider))
	}
}

// NewSparseEmbedder creates the corpus-fitted sparse embedder
func NewSparseEmbedder() interfaces.SparseEmbedder {
	return NewTFIDFEmbedder()
}
