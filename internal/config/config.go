// ABOUTME: Centralized configuration for the document assistant
// ABOUTME: Layers defaults, an optional YAML file, and environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Provider names accepted for embedding and generation
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultTopK           = 4
	DefaultVectorStoreDir = "document_vectors"
)

// AppName is used for the XDG config directory
const AppName = "document-assistant"

// Config holds all configuration for the document assistant
type Config struct {
	// Charm settings
	CharmHost   string `yaml:"charm_host"`
	CharmDBName string `yaml:"charm_db"`
	AutoSync    bool   `yaml:"charm_auto_sync"`

	// Model settings
	EmbeddingProvider string        `yaml:"embedding_provider"`
	EmbeddingModel    string        `yaml:"embedding_model"`
	LLMProvider       string        `yaml:"llm_provider"`
	ChatModel         string        `yaml:"chat_model"`
	Temperature       float64       `yaml:"temperature"`
	OpenAIKey         string        `yaml:"-"`
	OpenAIBaseURL     string        `yaml:"openai_base_url"`
	OllamaHost        string        `yaml:"ollama_host"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay"`

	// Pipeline settings
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	TopK           int    `yaml:"top_k"`
	VectorStoreDir string `yaml:"vector_store_dir"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CharmHost:         "cloud.charm.sh",
		CharmDBName:       "document-assistant",
		AutoSync:          true,
		EmbeddingProvider: ProviderOllama,
		LLMProvider:       ProviderOpenAI,
		Temperature:       0,
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryDelay:        2 * time.Second,
		ChunkSize:         DefaultChunkSize,
		ChunkOverlap:      DefaultChunkOverlap,
		TopK:              DefaultTopK,
		VectorStoreDir:    DefaultVectorStoreDir,
		LogLevel:          "info",
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/document-assistant/config.yaml
func DefaultConfigPath() string {
	// xdg resolves its paths once at init; reading the variable here lets
	// t.Setenv and per-process overrides take effect.
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, AppName, "config.yaml")
}

// Load reads configuration from the default config file (if present) and environment
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, then applies environment overrides.
// An empty path means the default location, which may be absent.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyModelDefaults()

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.CharmHost = getEnv("CHARM_HOST", c.CharmHost)
	c.CharmDBName = getEnv("CHARM_DB", c.CharmDBName)
	c.AutoSync = getEnvBool("CHARM_AUTO_SYNC", c.AutoSync)

	c.EmbeddingProvider = getEnv("DOCASSIST_EMBEDDING_PROVIDER", c.EmbeddingProvider)
	c.EmbeddingModel = getEnv("DOCASSIST_EMBEDDING_MODEL", c.EmbeddingModel)
	c.LLMProvider = getEnv("DOCASSIST_LLM_PROVIDER", c.LLMProvider)
	c.ChatModel = getEnv("DOCASSIST_CHAT_MODEL", c.ChatModel)
	c.Temperature = getEnvFloat("DOCASSIST_TEMPERATURE", c.Temperature)
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.OllamaHost = getEnv("OLLAMA_HOST", c.OllamaHost)
	c.Timeout = getEnvDuration("DOCASSIST_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("DOCASSIST_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("DOCASSIST_RETRY_DELAY", c.RetryDelay)

	c.ChunkSize = getEnvInt("DOCASSIST_CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("DOCASSIST_CHUNK_OVERLAP", c.ChunkOverlap)
	c.TopK = getEnvInt("DOCASSIST_TOP_K", c.TopK)
	c.VectorStoreDir = getEnv("DOCASSIST_VECTOR_DIR", c.VectorStoreDir)
	c.LogLevel = getEnv("DOCASSIST_LOG_LEVEL", c.LogLevel)
}

// applyModelDefaults picks per-provider model names when none were configured
func (c *Config) applyModelDefaults() {
	c.EmbeddingProvider = strings.ToLower(c.EmbeddingProvider)
	c.LLMProvider = strings.ToLower(c.LLMProvider)

	if c.EmbeddingModel == "" {
		switch c.EmbeddingProvider {
		case ProviderOpenAI:
			c.EmbeddingModel = "text-embedding-3-small"
		case ProviderOllama:
			c.EmbeddingModel = "all-minilm"
		}
	}
	if c.ChatModel == "" {
		switch c.LLMProvider {
		case ProviderOpenAI:
			c.ChatModel = "gpt-4o-mini"
		case ProviderOllama:
			c.ChatModel = "llama3.2"
		}
	}
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if !validProvider(c.EmbeddingProvider) {
		return fmt.Errorf("embedding provider must be %q or %q, got %q", ProviderOpenAI, ProviderOllama, c.EmbeddingProvider)
	}
	if !validProvider(c.LLMProvider) {
		return fmt.Errorf("llm provider must be %q or %q, got %q", ProviderOpenAI, ProviderOllama, c.LLMProvider)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("DOCASSIST_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DOCASSIST_CHUNK_OVERLAP must be in [0, %d), got %d", c.ChunkSize, c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("DOCASSIST_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("DOCASSIST_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("DOCASSIST_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	return nil
}

func validProvider(p string) bool {
	return p == ProviderOpenAI || p == ProviderOllama
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
