// ABOUTME: Tests for SQLite database connection and schema initialization
// ABOUTME: Verifies database creation, schema, and read-only opening
package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Conn() == nil {
		t.Error("Conn() should not be nil")
	}

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %v, want :memory:", db.Path())
	}
}

func TestSchemaInitialization(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	tables := []string{"manifest", "chunks"}
	for _, table := range tables {
		var name string
		err := db.Conn().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "subdir", "nested", IndexFileName)

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestOpenReadOnly_Missing(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), IndexFileName))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenReadOnly() error = %v, want os.ErrNotExist", err)
	}
}

func TestOpenReadOnly_Existing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), IndexFileName)
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_ = db.Close()

	ro, err := OpenReadOnly(dbPath)
	if err != nil {
		t.Fatalf("OpenReadOnly() error = %v", err)
	}
	defer func() { _ = ro.Close() }()

	if _, err := ro.Conn().Exec("DELETE FROM chunks"); err == nil {
		t.Error("write through read-only connection should fail")
	}
}

func TestFileURI(t *testing.T) {
	tests := []struct {
		path  string
		query string
		want  string
	}{
		{"/tmp/store/index.db", "mode=ro", "file:/tmp/store/index.db?mode=ro"},
		{"/tmp/my store/index.db", "mode=ro", "file:/tmp/my%20store/index.db?mode=ro"},
		{"/tmp/docs#2/index.db", "mode=ro", "file:/tmp/docs%232/index.db?mode=ro"},
		{"/tmp/q?x/index.db", "mode=ro", "file:/tmp/q%3Fx/index.db?mode=ro"},
		{"/tmp/100%/index.db", "mode=ro", "file:/tmp/100%25/index.db?mode=ro"},
		{"document_vectors/index.db", "mode=ro", "file:document_vectors/index.db?mode=ro"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := fileURI(tt.path, tt.query); got != tt.want {
				t.Errorf("fileURI(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOpen_SpecialCharacterPath(t *testing.T) {
	parent := t.TempDir()
	path := filepath.Join(parent, "q?x#1", IndexFileName)

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database not created at %s: %v", path, err)
	}

	ro, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() error = %v", err)
	}
	defer func() { _ = ro.Close() }()

	var n int
	if err := ro.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		t.Errorf("query on reopened database failed: %v", err)
	}
}
