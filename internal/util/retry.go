// ABOUTME: Retry utilities for model API calls with exponential backoff
// ABOUTME: Shared by the OpenAI and Ollama clients for consistent retry behavior
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second || backoff <= 0 {
		backoff = 30 * time.Second
	}
	// Jitter in [-25%, +25%)
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// Sleep waits for d or until ctx is done, whichever comes first
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
