// ABOUTME: SQLite schema for persisted vector indexes
// ABOUTME: One chunks table with vector BLOBs and a singleton manifest row
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Manifest singleton table
CREATE TABLE IF NOT EXISTS manifest (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    schema_version INTEGER NOT NULL,
    embedding_model TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    chunk_count INTEGER NOT NULL,
    documents TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Chunks table; position preserves insertion order for tie-breaking
CREATE TABLE IF NOT EXISTS chunks (
    position INTEGER PRIMARY KEY,
    chunk_id TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    source TEXT NOT NULL,
    page INTEGER NOT NULL,
    vector BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
`

// SchemaVersion is the current schema version recorded in the manifest
const SchemaVersion = 1
