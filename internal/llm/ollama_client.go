// ABOUTME: Ollama client for local embeddings and text generation
// ABOUTME: Uses the official ollama/api package against /api/embed and /api/generate
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	// DefaultOllamaHost is used when no host is configured
	DefaultOllamaHost = "http://localhost:11434"
	// DefaultOllamaEmbeddingModel is the sentence-transformers MiniLM model
	DefaultOllamaEmbeddingModel = "all-minilm"
	// DefaultOllamaChatModel is the default local generation model
	DefaultOllamaChatModel = "llama3.2"
)

// OllamaConfig holds configuration for the Ollama client
type OllamaConfig struct {
	Host           string
	EmbeddingModel string
	ChatModel      string
	Temperature    float32
	Retry          RetryPolicy
	HTTPClient     *http.Client
}

// OllamaClient wraps the Ollama API client with retry logic
type OllamaClient struct {
	client         *api.Client
	host           string
	embeddingModel string
	chatModel      string
	temperature    float32
	retry          RetryPolicy
}

// NewOllamaClient creates a client for a local or remote Ollama server
func NewOllamaClient(config *OllamaConfig) (*OllamaClient, error) {
	host := config.Host
	if host == "" {
		host = DefaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultOllamaEmbeddingModel
	}
	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultOllamaChatModel
	}

	return &OllamaClient{
		client:         api.NewClient(base, httpClient),
		host:           host,
		embeddingModel: embeddingModel,
		chatModel:      chatModel,
		temperature:    config.Temperature,
		retry:          config.Retry,
	}, nil
}

// Host returns the server URL
func (c *OllamaClient) Host() string {
	return c.host
}

// EmbeddingModelInfo identifies the embedding model
func (c *OllamaClient) EmbeddingModelInfo() string {
	return "ollama:" + c.embeddingModel
}

// ChatModelInfo identifies the generation model
func (c *OllamaClient) ChatModelInfo() string {
	return "ollama:" + c.chatModel
}

// Embed generates an embedding vector for one text
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for texts, batching requests
func (c *OllamaClient) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		batch := texts[start:end]

		resp, err := withRetry(ctx, c.retry, "generate embeddings", func(ctx context.Context) (*api.EmbedResponse, error) {
			resp, err := c.client.Embed(ctx, &api.EmbedRequest{
				Model: c.embeddingModel,
				Input: batch,
			})
			if err != nil {
				return nil, err
			}
			if len(resp.Embeddings) != len(batch) {
				return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrEmptyResponse, len(resp.Embeddings), len(batch))
			}
			return resp, nil
		})
		if err != nil {
			return nil, err
		}

		for _, e := range resp.Embeddings {
			vectors = append(vectors, toFloat64(e))
		}
	}

	return vectors, nil
}

// Generate runs a single non-streaming completion
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false

	return withRetry(ctx, c.retry, "generate completion", func(ctx context.Context) (string, error) {
		var out strings.Builder
		err := c.client.Generate(ctx, &api.GenerateRequest{
			Model:  c.chatModel,
			Prompt: prompt,
			Stream: &stream,
			Options: map[string]interface{}{
				"temperature": c.temperature,
			},
		}, func(resp api.GenerateResponse) error {
			out.WriteString(resp.Response)
			return nil
		})
		if err != nil {
			return "", err
		}

		text := strings.TrimSpace(out.String())
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})
}

// OllamaEmbedder adapts OllamaClient to the Embedder interface
type OllamaEmbedder struct{ *OllamaClient }

// ModelInfo identifies the embedding model
func (e OllamaEmbedder) ModelInfo() string { return e.EmbeddingModelInfo() }

// OllamaGenerator adapts OllamaClient to the Generator interface
type OllamaGenerator struct{ *OllamaClient }

// ModelInfo identifies the generation model
func (g OllamaGenerator) ModelInfo() string { return g.ChatModelInfo() }
