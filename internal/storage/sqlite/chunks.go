// ABOUTME: Chunk persistence for SQLite index files
// ABOUTME: Stores chunk text with little-endian float64 vector BLOBs in insertion order
package sqlite

import (
	"context"
	"fmt"

	"github.com/harper/document-assistant/internal/models"
)

// ChunkStore handles embedded chunk persistence
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// SaveAll writes chunks in a single transaction, keeping their order
func (s *ChunkStore) SaveAll(ctx context.Context, chunks []models.EmbeddedChunk) error {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (position, chunk_id, content, source, page, vector)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range chunks {
		if _, err := stmt.ExecContext(ctx, i, c.ChunkID, c.Content, c.Source, c.Page, vectorToBlob(c.Vector)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ChunkID, err)
		}
	}

	return tx.Commit()
}

// All returns every stored chunk in insertion order
func (s *ChunkStore) All(ctx context.Context) ([]models.EmbeddedChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, content, source, page, vector
		FROM chunks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.EmbeddedChunk
	for rows.Next() {
		var (
			c    models.EmbeddedChunk
			blob []byte
		)
		if err := rows.Scan(&c.ChunkID, &c.Content, &c.Source, &c.Page, &blob); err != nil {
			return nil, err
		}
		c.Vector = blobToVector(blob)
		chunks = append(chunks, c)
	}

	return chunks, rows.Err()
}

// CountBySource returns chunk counts keyed by document source
func (s *ChunkStore) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT source, COUNT(*) FROM chunks GROUP BY source")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			source string
			n      int
		)
		if err := rows.Scan(&source, &n); err != nil {
			return nil, err
		}
		counts[source] = n
	}
	return counts, rows.Err()
}
