// ABOUTME: In-memory vector index with exact cosine search and directory persistence
// ABOUTME: Saves atomically to <dir>/index.db through the SQLite storage layer
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage/sqlite"
)

var (
	// ErrVectorStoreNotFound is returned when a directory holds no saved index
	ErrVectorStoreNotFound = errors.New("no vector store found at the specified directory")
	// ErrEmptyIndex is returned when building from zero chunks
	ErrEmptyIndex = errors.New("no chunks to index")
	// ErrDimensionMismatch is returned when chunk vectors differ in length
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// VectorIndex is an immutable collection of embedded chunks of one dimension
type VectorIndex struct {
	chunks   []models.EmbeddedChunk
	manifest models.IndexManifest
}

// BuildIndex creates an index from chunks embedded with the named model
func BuildIndex(chunks []models.EmbeddedChunk, embeddingModel string) (*VectorIndex, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyIndex
	}

	dim := len(chunks[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("%w: chunk %s has an empty vector", ErrDimensionMismatch, chunks[0].ChunkID)
	}

	var docs []string
	seen := make(map[string]bool)
	for _, c := range chunks {
		if len(c.Vector) != dim {
			return nil, fmt.Errorf("%w: chunk %s has %d, expected %d", ErrDimensionMismatch, c.ChunkID, len(c.Vector), dim)
		}
		if !seen[c.Source] {
			seen[c.Source] = true
			docs = append(docs, c.Source)
		}
	}

	owned := make([]models.EmbeddedChunk, len(chunks))
	copy(owned, chunks)

	return &VectorIndex{
		chunks: owned,
		manifest: models.IndexManifest{
			EmbeddingModel: embeddingModel,
			Dimension:      dim,
			ChunkCount:     len(owned),
			Documents:      docs,
			CreatedAt:      time.Now().UTC(),
		},
	}, nil
}

// Len returns the number of chunks in the index
func (idx *VectorIndex) Len() int {
	return len(idx.chunks)
}

// Dimension returns the vector dimension
func (idx *VectorIndex) Dimension() int {
	return idx.manifest.Dimension
}

// Manifest returns a copy of the index manifest
func (idx *VectorIndex) Manifest() models.IndexManifest {
	m := idx.manifest
	m.Documents = append([]string(nil), idx.manifest.Documents...)
	return m
}

// Search returns up to k chunks by descending cosine similarity.
// Equal scores keep insertion order.
func (idx *VectorIndex) Search(query []float64, k int) ([]models.SearchResult, error) {
	if len(query) != idx.manifest.Dimension {
		return nil, fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(query), idx.manifest.Dimension)
	}
	if k <= 0 {
		return []models.SearchResult{}, nil
	}

	results := make([]models.SearchResult, len(idx.chunks))
	for i, c := range idx.chunks {
		results[i] = models.SearchResult{
			Chunk: c.Chunk,
			Score: sqlite.CosineSimilarity(query, c.Vector),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// IndexPath returns the database file path inside a vector store directory
func IndexPath(dir string) string {
	return filepath.Join(dir, sqlite.IndexFileName)
}

// Exists reports whether dir holds a saved index
func Exists(dir string) bool {
	info, err := os.Stat(IndexPath(dir))
	return err == nil && !info.IsDir()
}

// Save writes the index to dir, creating it if needed. The file is
// written under a temporary name and renamed so readers never see a partial index.
func (idx *VectorIndex) Save(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create vector store directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", sqlite.IndexFileName, uuid.New().String()))
	cleanup := func() {
		_ = os.Remove(tmpPath)
		_ = os.Remove(tmpPath + "-journal")
	}

	store, err := sqlite.NewStorageWithPath(tmpPath)
	if err != nil {
		cleanup()
		return err
	}

	if err := store.WriteIndex(ctx, &idx.manifest, idx.chunks); err != nil {
		_ = store.Close()
		cleanup()
		return err
	}
	if err := store.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close index: %w", err)
	}

	if err := os.Rename(tmpPath, IndexPath(dir)); err != nil {
		cleanup()
		return fmt.Errorf("failed to finalize index: %w", err)
	}
	return nil
}

// LoadIndex reads a saved index from dir
func LoadIndex(ctx context.Context, dir string) (*VectorIndex, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() || !Exists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrVectorStoreNotFound, dir)
	}

	store, err := OpenSaved(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	m, chunks, err := store.ReadIndex(ctx)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("saved index in %s is empty: %w", dir, ErrEmptyIndex)
	}

	return &VectorIndex{chunks: chunks, manifest: *m}, nil
}

// OpenSaved opens the saved index in dir read-only for inspection or export
func OpenSaved(dir string) (*sqlite.Storage, error) {
	if !Exists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrVectorStoreNotFound, dir)
	}

	store, err := sqlite.OpenStorageReadOnly(IndexPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return store, nil
}

// ReadManifest reads only the manifest of a saved index
func ReadManifest(ctx context.Context, dir string) (*models.IndexManifest, error) {
	store, err := OpenSaved(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return store.Manifest(ctx)
}
