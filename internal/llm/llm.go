// ABOUTME: Provider-neutral interfaces for embedding and text generation
// ABOUTME: Shared retry loop with per-attempt timeouts and exponential backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/document-assistant/internal/util"
)

// embedBatchSize bounds how many texts go into one embedding request
const embedBatchSize = 64

// ErrEmptyResponse is returned when a provider answers without content
var ErrEmptyResponse = errors.New("empty response from model")

// Embedder maps text to fixed-dimension vectors
type Embedder interface {
	// Embed returns the vector for a single text
	Embed(ctx context.Context, text string) ([]float64, error)
	// EmbedBatch returns one vector per input, in order
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	// ModelInfo identifies the provider and model, e.g. "ollama:all-minilm"
	ModelInfo() string
}

// Generator produces a completion for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelInfo() string
}

// RetryPolicy controls how external calls are retried
type RetryPolicy struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// DefaultRetryPolicy returns three retries, 2s base delay, 30s per attempt
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Timeout:    30 * time.Second,
	}
}

// withRetry runs fn until it succeeds, the attempts run out, or ctx is cancelled
func withRetry[T any](ctx context.Context, p RetryPolicy, what string, fn func(ctx context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := util.Sleep(ctx, util.CalculateBackoff(p.RetryDelay, attempt)); err != nil {
				return zero, fmt.Errorf("%s cancelled: %w", what, err)
			}
		}

		attemptCtx := ctx
		cancel := func() {}
		if p.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		}

		result, err := fn(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}

		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
		if ctx.Err() != nil {
			return zero, fmt.Errorf("%s cancelled: %w", what, lastErr)
		}
	}

	return zero, fmt.Errorf("failed to %s after %d attempts: %w", what, p.MaxRetries+1, lastErr)
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
