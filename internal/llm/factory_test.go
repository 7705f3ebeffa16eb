// ABOUTME: Tests for building providers from configuration
// ABOUTME: Verifies provider selection and model identifiers
package llm

import (
	"testing"

	"github.com/harper/document-assistant/internal/config"
)

func TestNewEmbedder(t *testing.T) {
	cfg := config.Default()
	cfg.EmbeddingModel = "all-minilm"

	e, err := NewEmbedder(cfg)
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	if e.ModelInfo() != "ollama:all-minilm" {
		t.Errorf("ModelInfo() = %s", e.ModelInfo())
	}

	cfg.EmbeddingProvider = config.ProviderOpenAI
	cfg.EmbeddingModel = "text-embedding-3-small"
	if _, err := NewEmbedder(cfg); err == nil {
		t.Error("NewEmbedder() should fail for openai without a key")
	}

	cfg.OpenAIKey = "k"
	e, err = NewEmbedder(cfg)
	if err != nil {
		t.Fatalf("NewEmbedder() error = %v", err)
	}
	if e.ModelInfo() != "openai:text-embedding-3-small" {
		t.Errorf("ModelInfo() = %s", e.ModelInfo())
	}

	cfg.EmbeddingProvider = "cohere"
	if _, err := NewEmbedder(cfg); err == nil {
		t.Error("NewEmbedder() should fail for unknown provider")
	}
}

func TestNewGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.LLMProvider = config.ProviderOllama
	cfg.ChatModel = "mistral"

	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if g.ModelInfo() != "ollama:mistral" {
		t.Errorf("ModelInfo() = %s", g.ModelInfo())
	}

	cfg.LLMProvider = config.ProviderOpenAI
	cfg.ChatModel = "gemini-2.0-flash"
	cfg.OpenAIKey = "k"
	cfg.OpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	g, err = NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if g.ModelInfo() != "openai:gemini-2.0-flash" {
		t.Errorf("ModelInfo() = %s", g.ModelInfo())
	}
}
