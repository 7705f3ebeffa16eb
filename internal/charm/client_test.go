// ABOUTME: Tests for the charm sync client against an in-memory key/value store
// ABOUTME: Covers push, pull, listing, deletion, and name validation
package charm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

type memStore struct {
	data  map[string][]byte
	syncs int
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Set(key, value []byte) error {
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memStore) Keys() ([][]byte, error) {
	var keys []string
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (m *memStore) Sync() error  { m.syncs++; return nil }
func (m *memStore) Reset() error { m.data = map[string][]byte{}; return nil }
func (m *memStore) Close() error { return nil }

func saveTestIndex(t *testing.T, dir string, sources ...string) {
	t.Helper()
	var chunks []models.EmbeddedChunk
	for i, src := range sources {
		chunks = append(chunks, models.EmbeddedChunk{
			Chunk:  models.Chunk{ChunkID: src, Content: "text from " + src, Source: src, Page: 1},
			Vector: []float64{float64(i + 1), 1},
		})
	}
	idx, err := storage.BuildIndex(chunks, "test-model")
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	if err := idx.Save(context.Background(), dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
}

func TestPushPull(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	c := newClientWithStore(mem, &Config{AutoSync: true})

	src := filepath.Join(t.TempDir(), "document_vectors")
	saveTestIndex(t, src, "a.pdf", "b.pdf")

	pushed, err := c.PushIndex(ctx, "papers", src)
	if err != nil {
		t.Fatalf("PushIndex failed: %v", err)
	}
	if pushed.ChunkCount != 2 {
		t.Errorf("pushed ChunkCount = %d, want 2", pushed.ChunkCount)
	}
	if mem.syncs != 1 {
		t.Errorf("syncs = %d, want 1", mem.syncs)
	}
	if _, ok := mem.data[IndexKey("papers")]; !ok {
		t.Error("index key not written")
	}

	dst := filepath.Join(t.TempDir(), "pulled")
	pulled, err := c.PullIndex(ctx, "papers", dst)
	if err != nil {
		t.Fatalf("PullIndex failed: %v", err)
	}
	if pulled.EmbeddingModel != "test-model" || len(pulled.Documents) != 2 {
		t.Errorf("pulled manifest = %+v", pulled)
	}

	idx, err := storage.LoadIndex(ctx, dst)
	if err != nil {
		t.Fatalf("LoadIndex after pull failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the index file after pull, got %d entries", len(entries))
	}
}

func TestPushIndex_NoSavedStore(t *testing.T) {
	c := newClientWithStore(newMemStore(), &Config{})

	_, err := c.PushIndex(context.Background(), "papers", filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, storage.ErrVectorStoreNotFound) {
		t.Errorf("err = %v, want ErrVectorStoreNotFound", err)
	}
}

func TestPullIndex_NotFound(t *testing.T) {
	c := newClientWithStore(newMemStore(), &Config{})

	_, err := c.PullIndex(context.Background(), "nothing", t.TempDir())
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestPullIndex_InvalidDataKeepsExisting(t *testing.T) {
	ctx := context.Background()
	mem := newMemStore()
	c := newClientWithStore(mem, &Config{})

	dir := filepath.Join(t.TempDir(), "document_vectors")
	saveTestIndex(t, dir, "keep.pdf")

	mem.data[IndexKey("broken")] = []byte("not a database")

	if _, err := c.PullIndex(ctx, "broken", dir); err == nil {
		t.Fatal("expected error for invalid synced data")
	}

	idx, err := storage.LoadIndex(ctx, dir)
	if err != nil {
		t.Fatalf("existing index should survive: %v", err)
	}
	if idx.Manifest().Documents[0] != "keep.pdf" {
		t.Errorf("existing index was replaced: %v", idx.Manifest().Documents)
	}
}

func TestListAndDeleteIndexes(t *testing.T) {
	ctx := context.Background()
	c := newClientWithStore(newMemStore(), &Config{})

	dir := filepath.Join(t.TempDir(), "document_vectors")
	saveTestIndex(t, dir, "a.pdf")

	for _, name := range []string{"zeta", "alpha"} {
		if _, err := c.PushIndex(ctx, name, dir); err != nil {
			t.Fatalf("PushIndex(%s) failed: %v", name, err)
		}
	}

	list, err := c.ListIndexes()
	if err != nil {
		t.Fatalf("ListIndexes failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Fatalf("ListIndexes = %+v, want alpha then zeta", list)
	}
	if list[0].Manifest.ChunkCount != 1 {
		t.Errorf("ChunkCount = %d, want 1", list[0].Manifest.ChunkCount)
	}

	if err := c.DeleteIndex("zeta"); err != nil {
		t.Fatalf("DeleteIndex failed: %v", err)
	}
	list, _ = c.ListIndexes()
	if len(list) != 1 || list[0].Name != "alpha" {
		t.Errorf("after delete = %+v", list)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"document_vectors", false},
		{"papers-2024", false},
		{"", true},
		{"  ", true},
		{"a:b", true},
		{"a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName("/tmp/stores/document_vectors/"); got != "document_vectors" {
		t.Errorf("DefaultName = %q, want document_vectors", got)
	}
}
