// Package embedders provides embedding implementations for ragtext
package embedders

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/types"
)

// EmbedderConfig holds configuration for an embedder backend
type EmbedderConfig struct {
	Provider  string        `json:"provider" yaml:"provider"`
	Model     string        `json:"model" yaml:"model"`
	APIKey    string        `json:"api_key" yaml:"api_key"`
	BaseURL   string        `json:"base_url" yaml:"base_url"`
	Dimension int           `json:"dimension" yaml:"dimension"`
	MaxLength int           `json:"max_length" yaml:"max_length"`
	BatchSize int           `json:"batch_size" yaml:"batch_size"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	Normalize bool          `json:"normalize" yaml:"normalize"`
}

// Validate checks the embedder configuration
func (c *EmbedderConfig) Validate() error {
	if c == nil {
		return errors.NewConfigError("embedder config cannot be nil")
	}
	if c.Provider == "" {
		return errors.NewConfigError("embedder provider is required")
	}
	if c.Dimension < 0 {
		return errors.NewConfigError("dimension cannot be negative")
	}
	if c.BatchSize < 0 {
		return errors.NewConfigError("batch size cannot be negative")
	}
	return nil
}

// BaseEmbedder provides common functionality shared by embedder implementations
type BaseEmbedder struct {
	modelName string
	dimension int
	maxLength int
	timeout   time.Duration
}

// NewBaseEmbedder creates a new base embedder instance
func NewBaseEmbedder(modelName string, dimension int) *BaseEmbedder {
	return &BaseEmbedder{
		modelName: modelName,
		dimension: dimension,
		maxLength: 8192,
		timeout:   30 * time.Second,
	}
}

// GetDimension returns the embedding dimension
func (b *BaseEmbedder) GetDimension() int {
	return b.dimension
}

// GetModelName returns the model name
func (b *BaseEmbedder) GetModelName() string {
	return b.modelName
}

// SetMaxLength sets the maximum input length in characters
func (b *BaseEmbedder) SetMaxLength(maxLength int) {
	if maxLength > 0 {
		b.maxLength = maxLength
	}
}

// SetTimeout sets the request timeout
func (b *BaseEmbedder) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		b.timeout = timeout
	}
}

// GetTimeout returns the request timeout
func (b *BaseEmbedder) GetTimeout() time.Duration {
	return b.timeout
}

// PreprocessText collapses whitespace and truncates overlong input at a
// word boundary where possible
func (b *BaseEmbedder) PreprocessText(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	if len(text) > b.maxLength {
		text = text[:b.maxLength]
		if lastSpace := strings.LastIndex(text, " "); lastSpace > b.maxLength/2 {
			text = text[:lastSpace]
		}
	}

	return text
}

// NormalizeVector normalizes an embedding vector to unit length
func (b *BaseEmbedder) NormalizeVector(vector types.EmbeddingVector) types.EmbeddingVector {
	var norm float32
	for _, val := range vector {
		norm += val * val
	}
	norm = float32(math.Sqrt(float64(norm)))

	if norm == 0 {
		return vector
	}

	normalized := make(types.EmbeddingVector, len(vector))
	for i, val := range vector {
		normalized[i] = val / norm
	}
	return normalized
}

// ValidateVector checks an embedding vector for dimension and numeric sanity
func (b *BaseEmbedder) ValidateVector(vector types.EmbeddingVector) error {
	if len(vector) == 0 {
		return fmt.Errorf("embedding vector is empty")
	}
	if b.dimension > 0 && len(vector) != b.dimension {
		return fmt.Errorf("embedding dimension mismatch: expected %d, got %d", b.dimension, len(vector))
	}
	for i, val := range vector {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return fmt.Errorf("invalid value at index %d: %f", i, val)
		}
	}
	return nil
}

// Close releases resources held by the embedder
func (b *BaseEmbedder) Close() error {
	return nil
}
