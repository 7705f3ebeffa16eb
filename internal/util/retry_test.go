// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and context-aware sleeping
package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	result := CalculateBackoff(time.Second, 0)
	if result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
}

func TestCalculateBackoff_FirstAttempt(t *testing.T) {
	baseDelay := 100 * time.Millisecond
	result := CalculateBackoff(baseDelay, 1)

	// First attempt: 2^1 * 100ms = 200ms, with ±25% jitter = 150ms to 250ms
	minExpected := 150 * time.Millisecond
	maxExpected := 250 * time.Millisecond

	if result < minExpected || result > maxExpected {
		t.Errorf("expected backoff between %v and %v, got %v", minExpected, maxExpected, result)
	}
}

func TestCalculateBackoff_CapsAt30Seconds(t *testing.T) {
	baseDelay := time.Second

	// Attempt 10 would give 2^10 * 1s = 1024s without cap
	result := CalculateBackoff(baseDelay, 10)

	// Should be capped at 30s with ±25% jitter = 22.5s to 37.5s
	maxAllowed := 37500 * time.Millisecond

	if result > maxAllowed {
		t.Errorf("expected backoff <= %v (30s + 25%% jitter), got %v", maxAllowed, result)
	}
}

func TestCalculateBackoff_AttemptCappedAt30(t *testing.T) {
	baseDelay := time.Millisecond

	// Very high attempt values should not overflow or panic
	result := CalculateBackoff(baseDelay, 100)

	// Should be capped at 30s with jitter
	maxAllowed := 37500 * time.Millisecond

	if result > maxAllowed {
		t.Errorf("expected backoff <= %v for high attempt, got %v", maxAllowed, result)
	}
	if result < 0 {
		t.Error("backoff should never be negative")
	}
}

func TestCalculateBackoff_NegativeAttemptReturnsZero(t *testing.T) {
	// Negative attempts should return 0 (same as attempt 0)
	result := CalculateBackoff(time.Second, -1)

	if result != 0 {
		t.Errorf("expected 0 for negative attempt, got %v", result)
	}

	// Also test very negative values
	result = CalculateBackoff(time.Second, -100)
	if result != 0 {
		t.Errorf("expected 0 for very negative attempt, got %v", result)
	}
}

func TestCalculateBackoff_ZeroBaseDelay(t *testing.T) {
	if got := CalculateBackoff(0, 3); got != 0 {
		t.Errorf("CalculateBackoff(0, 3) = %v, want 0", got)
	}
}

func TestSleep_Elapses(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Sleep returned after %v, want >= 10ms", elapsed)
	}
}

func TestSleep_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, want context.Canceled", err)
	}
}

func TestSleep_ZeroDuration(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) error = %v, want nil", err)
	}
}
