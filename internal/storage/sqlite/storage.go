// ABOUTME: Unified Storage layer that wraps the chunk and manifest stores
// ABOUTME: Reads and writes one complete vector index per database file
package sqlite

import (
	"context"
	"fmt"

	"github.com/harper/document-assistant/internal/models"
)

// Storage manages one persisted vector index using SQLite
type Storage struct {
	db       *DB
	chunks   *ChunkStore
	manifest *ManifestStore
}

// NewStorageWithPath opens or creates an index database at dbPath
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db), nil
}

// OpenStorageReadOnly opens an existing index database for reading
func OpenStorageReadOnly(dbPath string) (*Storage, error) {
	db, err := OpenReadOnly(dbPath)
	if err != nil {
		return nil, err
	}
	return newStorage(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db), nil
}

func newStorage(db *DB) *Storage {
	return &Storage{
		db:       db,
		chunks:   NewChunkStore(db),
		manifest: NewManifestStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// WriteIndex stores the manifest and every chunk
func (s *Storage) WriteIndex(ctx context.Context, m *models.IndexManifest, chunks []models.EmbeddedChunk) error {
	if err := s.chunks.SaveAll(ctx, chunks); err != nil {
		return fmt.Errorf("failed to save chunks: %w", err)
	}
	if err := s.manifest.Save(ctx, m); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// ReadIndex loads the manifest and every chunk, checking they agree
func (s *Storage) ReadIndex(ctx context.Context) (*models.IndexManifest, []models.EmbeddedChunk, error) {
	m, err := s.manifest.Get(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	chunks, err := s.chunks.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read chunks: %w", err)
	}

	if len(chunks) != m.ChunkCount {
		return nil, nil, fmt.Errorf("index is inconsistent: manifest lists %d chunks, found %d", m.ChunkCount, len(chunks))
	}
	for _, c := range chunks {
		if len(c.Vector) != m.Dimension {
			return nil, nil, fmt.Errorf("chunk %s has dimension %d, manifest says %d", c.ChunkID, len(c.Vector), m.Dimension)
		}
	}

	return m, chunks, nil
}

// Manifest reads only the manifest
func (s *Storage) Manifest(ctx context.Context) (*models.IndexManifest, error) {
	return s.manifest.Get(ctx)
}

// ChunkCounts returns the number of chunks per document source
func (s *Storage) ChunkCounts(ctx context.Context) (map[string]int, error) {
	return s.chunks.CountBySource(ctx)
}
