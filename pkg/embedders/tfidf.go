package embedders

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/types"
)

// TFIDFEmbedder produces sparse TF-IDF vectors over a batch corpus. The
// vocabulary is rebuilt on every EmbedCorpus call so indices are only
// comparable within one batch.
type TFIDFEmbedder struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	vocabSize    int
}

// NewTFIDFEmbedder creates a new sparse TF-IDF embedder
func NewTFIDFEmbedder() *TFIDFEmbedder {
	return &TFIDFEmbedder{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// GetProviderName returns the provider name
func (e *TFIDFEmbedder) GetProviderName() string {
	return "tfidf"
}

// VocabularySize returns the vocabulary size of the most recent corpus
func (e *TFIDFEmbedder) VocabularySize() int {
	return e.vocabSize
}

// EmbedCorpus fits a vocabulary over the texts and returns one sparse
// vector per text. Texts whose sparse vector has no non-zero entries get
// an empty vector; callers decide whether to skip them.
func (e *TFIDFEmbedder) EmbedCorpus(ctx context.Context, texts []string) ([]types.SparseVector, error) {
	if len(texts) == 0 {
		return nil, errors.NewEmbeddingError("empty corpus", nil)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	tokenized := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		tokens := e.tokenize(text)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// stable term ordering so indices are deterministic for a given corpus
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(texts))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.vocabSize = len(terms)

	vectors := make([]types.SparseVector, len(texts))
	for i, tokens := range tokenized {
		vectors[i] = e.vectorize(tokens, vocabulary, idf)
	}

	return vectors, nil
}

func (e *TFIDFEmbedder) vectorize(tokens []string, vocabulary map[string]int, idf []float64) types.SparseVector {
	tf := make(map[int]int)
	total := 0
	for _, tok := range tokens {
		if idx, ok := vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return types.SparseVector{}
	}

	indices := make([]int, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float32, len(indices))
	var norm float64
	for i, idx := range indices {
		weight := float64(tf[idx]) / float64(total) * idf[idx]
		values[i] = float32(weight)
		norm += weight * weight
	}

	// L2 normalize
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] = float32(float64(values[i]) / norm)
		}
	}

	out := types.SparseVector{
		Indices: make([]uint32, len(indices)),
		Values:  values,
	}
	for i, idx := range indices {
		out.Indices[i] = uint32(idx)
	}
	return out
}

func (e *TFIDFEmbedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, isStop := e.stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through",
		"during", "before", "after", "above", "below", "out", "off", "own",
		"same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
