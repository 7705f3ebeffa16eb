// ABOUTME: Charm KV client wrapper for cloud-synced vector stores
// ABOUTME: Pushes and pulls saved index files between devices using SSH key auth
package charm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harper/document-assistant/internal/config"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

// Key prefixes for synced entries
const (
	IndexPrefix    = "index:"
	ManifestPrefix = "manifest:"
)

// ErrIndexNotFound is returned when no synced index exists under a name
var ErrIndexNotFound = errors.New("synced vector store not found")

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// ConfigFrom extracts the charm settings from the application config
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	}
}

// store is the subset of charm kv the client relies on
type store interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
}

// Client wraps charm KV for vector store sync
type Client struct {
	kv     store
	config *Config
	mu     sync.Mutex
}

// RemoteIndex describes one synced vector store
type RemoteIndex struct {
	Name     string               `json:"name" yaml:"name"`
	Manifest models.IndexManifest `json:"manifest" yaml:"manifest"`
}

// NewClient creates a new charm client with the given config
func NewClient(cfg *Config) (*Client, error) {
	// Set CHARM_HOST before opening KV
	if cfg.Host != "" {
		os.Setenv("CHARM_HOST", cfg.Host)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := newClientWithStore(db, cfg)

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

func newClientWithStore(s store, cfg *Config) *Client {
	return &Client{kv: s, config: cfg}
}

// Host returns the configured charm host
func (c *Client) Host() string {
	return c.config.Host
}

// Close closes the KV database
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// GetAuthorizedKeys returns the list of linked devices/keys
func (c *Client) GetAuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Reset wipes all local data; remote data is re-synced on next access
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// PushIndex uploads the vector store saved in dir under name
func (c *Client) PushIndex(ctx context.Context, name, dir string) (*models.IndexManifest, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	manifest, err := storage.ReadManifest(ctx, dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(storage.IndexPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(IndexKey(name)), data); err != nil {
		return nil, fmt.Errorf("failed to set key %s: %w", IndexKey(name), err)
	}
	if err := c.kv.Set([]byte(ManifestKey(name)), manifestJSON); err != nil {
		return nil, fmt.Errorf("failed to set key %s: %w", ManifestKey(name), err)
	}
	c.syncIfEnabled()

	return manifest, nil
}

// PullIndex downloads the vector store synced under name into dir.
// The downloaded file is validated before it replaces any existing index.
func (c *Client) PullIndex(ctx context.Context, name, dir string) (*models.IndexManifest, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	c.mu.Lock()
	data, err := c.kv.Get([]byte(IndexKey(name)))
	c.mu.Unlock()
	if errors.Is(err, badger.ErrKeyNotFound) || (err == nil && data == nil) {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", IndexKey(name), err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vector store directory: %w", err)
	}
	staging, err := os.MkdirTemp(dir, ".pull-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := os.WriteFile(storage.IndexPath(staging), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write index file: %w", err)
	}

	manifest, err := storage.ReadManifest(ctx, staging)
	if err != nil {
		return nil, fmt.Errorf("synced vector store %s is invalid: %w", name, err)
	}

	if err := os.Rename(storage.IndexPath(staging), storage.IndexPath(dir)); err != nil {
		return nil, fmt.Errorf("failed to finalize index: %w", err)
	}
	return manifest, nil
}

// ListIndexes returns the synced vector stores sorted by name
func (c *Client) ListIndexes() ([]RemoteIndex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []RemoteIndex
	for _, key := range keys {
		keyStr := string(key)
		if !strings.HasPrefix(keyStr, ManifestPrefix) {
			continue
		}

		data, err := c.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get key %s: %w", keyStr, err)
		}

		var m models.IndexManifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", keyStr, err)
		}
		result = append(result, RemoteIndex{Name: strings.TrimPrefix(keyStr, ManifestPrefix), Manifest: m})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DeleteIndex removes a synced vector store
func (c *Client) DeleteIndex(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range []string{IndexKey(name), ManifestKey(name)} {
		if err := c.kv.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", key, err)
		}
	}
	c.syncIfEnabled()
	return nil
}

// IndexKey generates the key holding a store's index file
func IndexKey(name string) string {
	return IndexPrefix + name
}

// ManifestKey generates the key holding a store's manifest
func ManifestKey(name string) string {
	return ManifestPrefix + name
}

// DefaultName derives a sync name from a vector store directory
func DefaultName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ": /\\") {
		return fmt.Errorf("invalid vector store name %q", name)
	}
	return nil
}
