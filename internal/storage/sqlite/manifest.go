// ABOUTME: Manifest persistence for SQLite index files
// ABOUTME: Stores the singleton manifest row describing the index contents
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/document-assistant/internal/models"
)

// ErrNoManifest is returned when an index file carries no manifest row
var ErrNoManifest = errors.New("index has no manifest")

// ManifestStore handles manifest persistence
type ManifestStore struct {
	db *DB
}

// NewManifestStore creates a new ManifestStore
func NewManifestStore(db *DB) *ManifestStore {
	return &ManifestStore{db: db}
}

// Save writes or replaces the manifest
func (s *ManifestStore) Save(ctx context.Context, m *models.IndexManifest) error {
	docs, err := json.Marshal(m.Documents)
	if err != nil {
		return fmt.Errorf("failed to marshal documents: %w", err)
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO manifest (id, schema_version, embedding_model, dimension, chunk_count, documents, created_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			embedding_model = excluded.embedding_model,
			dimension = excluded.dimension,
			chunk_count = excluded.chunk_count,
			documents = excluded.documents,
			created_at = excluded.created_at
	`, SchemaVersion, m.EmbeddingModel, m.Dimension, m.ChunkCount, string(docs), createdAt.UTC())

	return err
}

// Get reads the manifest
func (s *ManifestStore) Get(ctx context.Context) (*models.IndexManifest, error) {
	var (
		m       models.IndexManifest
		version int
		docs    string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT schema_version, embedding_model, dimension, chunk_count, documents, created_at
		FROM manifest
		WHERE id = 1
	`).Scan(&version, &m.EmbeddingModel, &m.Dimension, &m.ChunkCount, &docs, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoManifest
	}
	if err != nil {
		return nil, err
	}

	if version > SchemaVersion {
		return nil, fmt.Errorf("index schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	if err := json.Unmarshal([]byte(docs), &m.Documents); err != nil {
		return nil, fmt.Errorf("failed to parse documents: %w", err)
	}

	return &m, nil
}
