/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry provides exponential backoff with jitter for judge API
// calls. LLM providers rate-limit aggressively; judges wrap their calls in
// Do so a transient 429 or 5xx does not surface as an ERROR judgment.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls backoff behavior.
type Config struct {
	// MaxAttempts is the total number of tries, including the first.
	// Values below 1 are invalid.
	MaxAttempts int
	// BaseBackoff is the delay after the first failed attempt; each
	// subsequent delay doubles, capped at MaxBackoff.
	BaseBackoff time.Duration
	// MaxBackoff caps the per-attempt delay.
	MaxBackoff time.Duration
	// MaxJitter is the upper bound of the random jitter added to each
	// delay to avoid thundering herds. Zero disables jitter.
	MaxJitter time.Duration
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.BaseBackoff < 0 || c.MaxBackoff < 0 || c.MaxJitter < 0 {
		return errors.New("backoff durations cannot be negative")
	}
	return nil
}

// DefaultConfig returns backoff settings tuned for quota-based rate limits,
// which often need longer recovery than typical transient errors.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseBackoff: time.Second,
		MaxBackoff:  time.Minute,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Do runs fn until it succeeds, the error is not retryable, attempts are
// exhausted, or the context is canceled. The operation name appears in logs
// and in the terminal error.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	var result T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, lastErr = fn(ctx)
		if lastErr == nil {
			return result, nil
		}
		if !retryable(lastErr) {
			return result, lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		backoff := min(cfg.BaseBackoff<<(attempt-1), cfg.MaxBackoff)
		if cfg.MaxJitter > 0 {
			backoff += rand.N(cfg.MaxJitter)
		}

		clog.FromContext(ctx).With("operation", operation).
			With("attempt", attempt).
			With("max_attempts", cfg.MaxAttempts).
			With("backoff", backoff).
			With("error", lastErr.Error()).
			Warn("Retryable error, backing off")

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return result, fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.MaxAttempts, lastErr)
}
