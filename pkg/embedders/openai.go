package embedders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/sashabaranov/go-openai"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/types"
)

// OpenAIEmbedder generates embeddings through the OpenAI API
type OpenAIEmbedder struct {
	*BaseEmbedder
	config      *EmbedderConfig
	client      *openai.Client
	rateLimiter *RateLimiter
	mu          sync.RWMutex
}

// RateLimiter implements simple token-bucket rate limiting for API calls
type RateLimiter struct {
	tokens     int
	maxTokens  int
	lastRefill time.Time
	refillRate time.Duration
	mu         sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		lastRefill: time.Now(),
		refillRate: refillRate,
	}
}

// Wait blocks until the requested tokens are available or the context ends
func (rl *RateLimiter) Wait(ctx context.Context, tokensNeeded int) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}

	if rl.tokens >= tokensNeeded {
		rl.tokens -= tokensNeeded
		return nil
	}

	waitTime := time.Duration(tokensNeeded-rl.tokens) * rl.refillRate
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(waitTime):
		rl.tokens = 0
		return nil
	}
}

// NewOpenAIEmbedder creates a new OpenAI embedder
func NewOpenAIEmbedder(config *EmbedderConfig) (*OpenAIEmbedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.APIKey == "" {
		return nil, errors.NewConfigError("OpenAI API key is required")
	}

	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}
	if config.Dimension == 0 {
		switch config.Model {
		case "text-embedding-3-large":
			config.Dimension = 3072
		default:
			config.Dimension = 1536
		}
	}
	if config.MaxLength == 0 {
		config.MaxLength = 8191
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	oai := &OpenAIEmbedder{
		BaseEmbedder: NewBaseEmbedder(config.Model, config.Dimension),
		config:       config,
		client:       openai.NewClientWithConfig(clientConfig),
		rateLimiter:  NewRateLimiter(100, time.Minute/100),
	}

	oai.SetMaxLength(config.MaxLength)
	oai.SetTimeout(config.Timeout)

	return oai, nil
}

// Embed generates an embedding for a single text
func (oai *OpenAIEmbedder) Embed(ctx context.Context, text string) (types.EmbeddingVector, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	results, err := oai.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NewEmbeddingError("no embeddings returned", nil)
	}
	return results[0], nil
}

// EmbedBatch generates embeddings for multiple texts, batching to respect
// API input limits
func (oai *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	if len(texts) == 0 {
		return []types.EmbeddingVector{}, nil
	}

	processed := make([]string, len(texts))
	for i, text := range texts {
		processed[i] = oai.PreprocessText(text)
	}

	batchSize := oai.config.BatchSize
	allEmbeddings := make([]types.EmbeddingVector, 0, len(processed))

	for i := 0; i < len(processed); i += batchSize {
		end := i + batchSize
		if end > len(processed) {
			end = len(processed)
		}

		if err := oai.rateLimiter.Wait(ctx, 1); err != nil {
			return nil, errors.NewEmbeddingError("rate limiting interrupted", err)
		}

		batch, err := oai.createEmbeddingsWithRetry(ctx, processed[i:end])
		if err != nil {
			return nil, errors.NewEmbeddingError(
				fmt.Sprintf("batch failed at index %d", i), err)
		}

		for j, embedding := range batch {
			if oai.config.Normalize {
				embedding = oai.NormalizeVector(embedding)
			}
			if err := oai.ValidateVector(embedding); err != nil {
				return nil, errors.NewEmbeddingError(
					fmt.Sprintf("invalid embedding at index %d", i+j), err)
			}
			allEmbeddings = append(allEmbeddings, embedding)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	return allEmbeddings, nil
}

func (oai *OpenAIEmbedder) createEmbeddingsWithRetry(ctx context.Context, texts []string) ([]types.EmbeddingVector, error) {
	var result []types.EmbeddingVector

	err := retry.Do(
		func() error {
			resp, err := oai.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
				Input: texts,
				Model: openai.EmbeddingModel(oai.config.Model),
			})
			if err != nil {
				return err
			}
			if len(resp.Data) != len(texts) {
				return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
			}

			result = make([]types.EmbeddingVector, len(resp.Data))
			for _, item := range resp.Data {
				result[item.Index] = types.EmbeddingVector(item.Embedding)
			}
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
func (oai *OpenAIEmbedder) GetProviderName() string {
	return "openai"
}

// HealthCheck verifies the API is reachable with the configured key
func (oai *OpenAIEmbedder) HealthCheck(ctx context.Context) error {
	if _, err := oai.client.ListModels(ctx); err != nil {
		return errors.NewEmbeddingError("OpenAI health check failed", err)
	}
	return nil
}

// Close releases resources held by the embedder
func (oai *OpenAIEmbedder) Close() error {
	return oai.BaseEmbedder.Close()
}
