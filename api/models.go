package api

import (
	"github.com/ragtext/ragtext/pkg/chunkers"
	"github.com/ragtext/ragtext/pkg/ingest"
	"github.com/ragtext/ragtext/pkg/types"
)

// IngestRequest asks the server to chunk and index files matching Source
type IngestRequest struct {
	// Source is a filename or glob resolved against the data directory
	Source string `json:"source" binding:"required" example:"*.txt"`

	// Strategy selects and configures the chunking strategy
	Strategy chunkers.StrategyConfig `json:"strategy"`
}

// IngestResponse reports the batch outcome
type IngestResponse struct {
	Status      ingest.BatchStatus  `json:"status"`
	Files       []ingest.FileResult `json:"files"`
	TotalChunks int                 `json:"total_chunks"`
}

// SearchRequest queries the indexed corpus
type SearchRequest struct {
	Query string `json:"query" binding:"required" example:"who stole the blue carbuncle"`
	TopK  *int   `json:"top_k,omitempty" example:"5"`
}

// SearchResponse carries the ranked results
type SearchResponse struct {
	Results []types.VectorSearchResult `json:"results"`
}

// ChatRequest asks a question over the indexed corpus
type ChatRequest struct {
	Question string `json:"question" binding:"required" example:"What killed Julia Stoner?"`
	TopK     *int   `json:"top_k,omitempty" example:"5"`
}

// ChatResponse carries the generated answer and the retrieved passages
type ChatResponse struct {
	Answer  string                     `json:"answer"`
	Sources []types.VectorSearchResult `json:"sources"`
}

// HealthResponse reports service and dependency health
type HealthResponse struct {
	Status     string `json:"status"`
	VectorDB   string `json:"vectordb"`
	Collection string `json:"collection"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
