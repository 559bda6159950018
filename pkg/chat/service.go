package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/interfaces"
	"github.com/ragtext/ragtext/pkg/types"
	"github.com/ragtext/ragtext/pkg/vectordb"
)

const systemPrompt = "You are a helpful assistant. Answer the question using only " +
	"the provided context passages. If the context does not contain the answer, " +
	"say you do not know."

// Service answers questions over the indexed corpus
type Service struct {
	embedder   interfaces.Embedder
	store      vectordb.VectorStore
	model      interfaces.ChatModel
	logger     interfaces.Logger
	collection string
	topK       int
}

// ServiceOptions configures a chat service
type ServiceOptions struct {
	Embedder   interfaces.Embedder
	Store      vectordb.VectorStore
	Model      interfaces.ChatModel
	Logger     interfaces.Logger
	Collection string
	TopK       int
}

// NewService creates a chat service
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Embedder == nil {
		return nil, errors.NewConfigError("dense embedder is required")
	}
	if opts.Store == nil {
		return nil, errors.NewConfigError("vector store is required")
	}
	if opts.Collection == "" {
		return nil, errors.NewConfigError("collection name is required")
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}

	return &Service{
		embedder:   opts.Embedder,
		store:      opts.Store,
		model:      opts.Model,
		logger:     opts.Logger,
		collection: opts.Collection,
		topK:       opts.TopK,
	}, nil
}

// Search embeds the query and returns the closest chunks. Queries run
// against the dense vectors only: sparse vectors are fit per ingestion
// batch, so their indices are not comparable to a freshly embedded query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]types.VectorSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewConfigError("query cannot be empty")
	}
	if limit <= 0 {
		limit = s.topK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	return s.store.Search(ctx, s.collection, vectordb.SearchQuery{
		Dense: vector,
		Limit: limit,
	})
}

// Answer holds a generated answer together with its supporting chunks
type Answer struct {
	Text    string                     `json:"answer"`
	Sources []types.VectorSearchResult `json:"sources"`
}

// Ask retrieves context for the question and generates an answer
func (s *Service) Ask(ctx context.Context, question string, limit int) (*Answer, error) {
	if s.model == nil {
		return nil, errors.NewConfigError("no chat model configured")
	}

	results, err := s.Search(ctx, question, limit)
	if err != nil {
		return nil, err
	}

	text, err := s.model.Generate(ctx, systemPrompt, BuildPrompt(question, results))
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("answered question", map[string]interface{}{
			"sources": len(results),
		})
	}

	return &Answer{Text: text, Sources: results}, nil
}

// BuildPrompt formats retrieved chunks and the question into a user prompt
func BuildPrompt(question string, results []types.VectorSearchResult) string {
	var sb strings.Builder

	sb.WriteString("Context passages:\n\n")
	for i, result := range results {
		text, _ := result.Payload["text"].(string)
		source, _ := result.Payload["source"].(string)
		fmt.Fprintf(&sb, "[%d] (%s) %s\n\n", i+1, source, text)
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}
