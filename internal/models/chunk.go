// ABOUTME: Chunk represents a bounded span of document text for embedding
// ABOUTME: EmbeddedChunk pairs a chunk with its vector; SearchResult adds a score
package models

// Chunk is a contiguous span of text extracted from one page of a document
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	Content string `json:"content"`
	Source  string `json:"source"`
	Page    int    `json:"page"`
}

// EmbeddedChunk is a chunk paired with its embedding vector.
// It is never mutated after creation.
type EmbeddedChunk struct {
	Chunk
	Vector []float64 `json:"vector"`
}

// SearchResult is a chunk returned from a similarity search
type SearchResult struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
