// ABOUTME: OpenAI-compatible client for embeddings and chat completions
// ABOUTME: Base URL is configurable so any OpenAI-compatible endpoint can be used
package llm

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Temperature    float32
	Retry          RetryPolicy
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Retry:          DefaultRetryPolicy(),
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	retry          RetryPolicy
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		temperature:    config.Temperature,
		retry:          config.Retry,
	}, nil
}

// EmbeddingModelInfo identifies the embedding model
func (c *OpenAIClient) EmbeddingModelInfo() string {
	return "openai:" + string(c.embeddingModel)
}

// ChatModelInfo identifies the chat model
func (c *OpenAIClient) ChatModelInfo() string {
	return "openai:" + c.chatModel
}

// Embed generates an embedding vector for one text
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for texts, batching requests
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		batch := texts[start:end]

		resp, err := withRetry(ctx, c.retry, "generate embeddings", func(ctx context.Context) (openai.EmbeddingResponse, error) {
			resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
				Input: batch,
				Model: c.embeddingModel,
			})
			if err != nil {
				return resp, err
			}
			if len(resp.Data) != len(batch) {
				return resp, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrEmptyResponse, len(resp.Data), len(batch))
			}
			return resp, nil
		})
		if err != nil {
			return nil, err
		}

		// Data carries an index per input; order by it rather than trusting response order
		ordered := make([][]float64, len(batch))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) {
				return nil, fmt.Errorf("embedding index %d out of range", d.Index)
			}
			ordered[d.Index] = toFloat64(d.Embedding)
		}
		vectors = append(vectors, ordered...)
	}

	return vectors, nil
}

// Generate sends the prompt as a single user message and returns the reply text
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	// go-openai omits a zero temperature, which the API treats as 1
	temperature := c.temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return withRetry(ctx, c.retry, "generate completion", func(ctx context.Context) (string, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: no completion choices returned", ErrEmptyResponse)
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}

// OpenAIEmbedder adapts OpenAIClient to the Embedder interface
type OpenAIEmbedder struct{ *OpenAIClient }

// ModelInfo identifies the embedding model
func (e OpenAIEmbedder) ModelInfo() string { return e.EmbeddingModelInfo() }

// OpenAIGenerator adapts OpenAIClient to the Generator interface
type OpenAIGenerator struct{ *OpenAIClient }

// ModelInfo identifies the chat model
func (g OpenAIGenerator) ModelInfo() string { return g.ChatModelInfo() }
