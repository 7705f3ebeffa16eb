// ABOUTME: Retriever embeds a question and returns the most similar indexed chunks
// ABOUTME: Always uses the same embedder the index was built with
package core

import (
	"context"
	"fmt"

	"github.com/harper/document-assistant/internal/llm"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

// DefaultTopK is the number of chunks retrieved per question
const DefaultTopK = 4

// Retriever finds chunks relevant to a query
type Retriever struct {
	index    *storage.VectorIndex
	embedder llm.Embedder
	k        int
}

// NewRetriever creates a Retriever over index; k <= 0 means DefaultTopK
func NewRetriever(index *storage.VectorIndex, embedder llm.Embedder, k int) *Retriever {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Retriever{index: index, embedder: embedder, k: k}
}

// Retrieve returns up to k chunks ordered by descending similarity to query
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.SearchResult, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &ExternalError{Service: ServiceEmbedding, Err: err}
	}

	results, err := r.index.Search(vector, r.k)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return results, nil
}
