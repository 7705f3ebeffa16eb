// ABOUTME: Manifest describing a built vector index
// ABOUTME: Records the embedding model so queries use the same model as indexing
package models

import "time"

// IndexManifest summarises a vector index
type IndexManifest struct {
	EmbeddingModel string    `json:"embedding_model" yaml:"embedding_model"`
	Dimension      int       `json:"dimension" yaml:"dimension"`
	ChunkCount     int       `json:"chunk_count" yaml:"chunk_count"`
	Documents      []string  `json:"documents" yaml:"documents"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}
