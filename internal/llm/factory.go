// ABOUTME: Builds embedders and generators from application configuration
// ABOUTME: Selects OpenAI or Ollama per concern
package llm

import (
	"fmt"

	"github.com/harper/document-assistant/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

func retryPolicy(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.Timeout,
	}
}

// NewEmbedder returns the embedder named by cfg.EmbeddingProvider
func NewEmbedder(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		client, err := NewOpenAIClientWithConfig(&ClientConfig{
			APIKey:         cfg.OpenAIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
			Retry:          retryPolicy(cfg),
		})
		if err != nil {
			return nil, err
		}
		return OpenAIEmbedder{client}, nil
	case config.ProviderOllama:
		client, err := NewOllamaClient(&OllamaConfig{
			Host:           cfg.OllamaHost,
			EmbeddingModel: cfg.EmbeddingModel,
			Retry:          retryPolicy(cfg),
		})
		if err != nil {
			return nil, err
		}
		return OllamaEmbedder{client}, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// NewGenerator returns the generator named by cfg.LLMProvider
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := NewOpenAIClientWithConfig(&ClientConfig{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			ChatModel:   cfg.ChatModel,
			Temperature: float32(cfg.Temperature),
			Retry:       retryPolicy(cfg),
		})
		if err != nil {
			return nil, err
		}
		return OpenAIGenerator{client}, nil
	case config.ProviderOllama:
		client, err := NewOllamaClient(&OllamaConfig{
			Host:        cfg.OllamaHost,
			ChatModel:   cfg.ChatModel,
			Temperature: float32(cfg.Temperature),
			Retry:       retryPolicy(cfg),
		})
		if err != nil {
			return nil, err
		}
		return OllamaGenerator{client}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}
