// Package types provides shared type definitions for ragtext
package types

import "fmt"

// EmbeddingVector represents a dense embedding vector
type EmbeddingVector []float32

// SparseVector represents a sparse (keyword-weighted) embedding as
// parallel index/value slices, the format Qdrant expects for sparse
// named vectors.
type SparseVector struct {
	Indices []uint32  `json:"indices"`
	Values  []float32 `json:"values"`
}

// IsEmpty reports whether the sparse vector carries no weights.
func (s *SparseVector) IsEmpty() bool {
	return s == nil || len(s.Indices) == 0
}

// Validate checks that indices and values line up.
func (s *SparseVector) Validate() error {
	if len(s.Indices) != len(s.Values) {
		return fmt.Errorf("sparse vector mismatch: %d indices, %d values", len(s.Indices), len(s.Values))
	}
	return nil
}

// EmbeddingKind identifies which vector representations a pipeline produces
type EmbeddingKind string

const (
	EmbeddingKindDense  EmbeddingKind = "dense"
	EmbeddingKindSparse EmbeddingKind = "sparse"
	EmbeddingKindHybrid EmbeddingKind = "hybrid"
)

// IsValidEmbeddingKind checks if an embedding kind is supported
func IsValidEmbeddingKind(kind EmbeddingKind) bool {
	switch kind {
	case EmbeddingKindDense, EmbeddingKindSparse, EmbeddingKindHybrid:
		return true
	}
	return false
}

// VectorSearchResult represents a vector search result
type VectorSearchResult struct {
	ID       string                 `json:"id"`
	Score    float32                `json:"score"`
	Payload  map[string]interface{} `json:"payload"`
}

// ErrorType classifies errors for transport mapping
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeExternal   ErrorType = "external"
)

// ContextKey is the type for request context keys
type ContextKey string

const (
	ContextKeyRequestID ContextKey = "request_id"
)
