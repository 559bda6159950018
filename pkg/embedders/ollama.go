package embedders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/types"
)

// OllamaEmbedder generates embeddings through a local Ollama server
type OllamaEmbedder struct {
	*BaseEmbedder
	config  *EmbedderConfig
	client  *resty.Client
	baseURL string
	mu      sync.Mutex
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaEmbedder creates a new Ollama embedder
func NewOllamaEmbedder(config *EmbedderConfig) (*OllamaEmbedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if config.Model == "" {
		config.Model = "nomic-embed-text"
	}
	if config.MaxLength == 0 {
		config.MaxLength = 2048
	}

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	// dimension is auto-detected from the first response when left zero
	ol := &OllamaEmbedder{
		BaseEmbedder: NewBaseEmbedder(config.Model, config.Dimension),
		config:       config,
		client:       client,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
	}

	ol.SetMaxLength(config.MaxLength)
	ol.SetTimeout(config.Timeout)

	return ol, nil
}

// Embed generates an embedding for a single text
func (ol *OllamaEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	embedding, err := ol.createEmbeddingWithRetry(ctx, ol.PreprocessText(text))
	if err != nil {
		return nil, errors.NewEmbeddingError("Ollama API error", err)
	}

	result := make(types.EmbeddingVector, len(embedding))
	for i, val := range embedding {
		result[i] = float32(val)
	}

	ol.mu.Lock()
	if ol.dimension == 0 || ol.dimension != len(result) {
		ol.dimension = len(result)
	}
	ol.mu.Unlock()

	if ol.config.Normalize {
		result = ol.NormalizeVector(result)
	}
	if err := ol.ValidateVector(result); err != nil {
		return nil, errors.NewEmbeddingError("invalid embedding", err)
	}

	return result, nil
}

// EmbedBatch generates embeddings for multiple texts sequentially; the
// Ollama embeddings endpoint accepts one prompt per request
func (ol *OllamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	if len(texts) == 0 {
		return []types.EmbeddingVector{}, nil
	}

	results := make([]types.EmbeddingVector, 0, len(texts))
	for i, text := range texts {
		embedding, err := ol.Embed(ctx, text)
		if err != nil {
			return nil, errors.NewEmbeddingError(
				fmt.Sprintf("batch failed at index %d", i), err)
		}
		results = append(results, embedding)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	return results, nil
}

func (ol *OllamaEmbedder) createEmbeddingWithRetry(ctx context.Context, text string) ([]float64, error) {
	var result []float64

	err := retry.Do(
		func() error {
			var resp ollamaEmbeddingResponse
			httpResp, err := ol.client.R().
				SetContext(ctx).
				SetBody(ollamaEmbeddingRequest{Model: ol.config.Model, Prompt: text}).
				SetResult(&resp).
				Post(ol.baseURL + "/api/embeddings")
			if err != nil {
				return err
			}
			if httpResp.IsError() {
				return fmt.Errorf("ollama returned status %d: %s",
					httpResp.StatusCode(), httpResp.String())
			}
			if len(resp.Embedding) == 0 {
				return fmt.Errorf("empty embedding in response")
			}
			result = resp.Embedding
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	)

	return result, err
}

// GetProviderName returns the provider name
func (ol *OllamaEmbedder) GetProviderName() string {
	return "ollama"
}

// HealthCheck verifies the Ollama server is reachable and serves the model
func (ol *OllamaEmbedder) HealthCheck(ctx context.Context) error {
	var tags ollamaTagsResponse
	resp, err := ol.client.R().
		SetContext(ctx).
		SetResult(&tags).
		Get(ol.baseURL + "/api/tags")
	if err != nil {
		return errors.NewEmbeddingError("Ollama health check failed", err)
	}
	if resp.IsError() {
		return errors.NewEmbeddingError(
			fmt.Sprintf("Ollama returned status %d", resp.StatusCode()), nil)
	}

	for _, model := range tags.Models {
		if model.Name == ol.config.Model || strings.HasPrefix(model.Name, ol.config.Model+":") {
			return nil
		}
	}
	return errors.NewEmbeddingError(
		fmt.Sprintf("model %s not available on Ollama server", ol.config.Model), nil)
}

// Close releases resources held by the embedder
func (ol *OllamaEmbedder) Close() error {
	return ol.BaseEmbedder.Close()
}
