// Package retryx retries an operation a bounded number of times with a fixed
// delay. It exists for the startup path: the backing store may not be
// reachable yet when the process starts, and we would rather wait out a slow
// database than crash-loop. The delay is deliberately fixed with no growth or
// jitter.
package retryx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kamelin22/user-api/pkg/slogx"
)

const (
	// DefaultAttempts is the total number of invocations, not the number of
	// retries after the first failure.
	DefaultAttempts = 3

	// DefaultDelay is the fixed wait between attempts.
	DefaultDelay = 5 * time.Second
)

// ErrExhausted wraps the final error once every attempt has failed.
var ErrExhausted = errors.New("retryx: attempts exhausted")

// Config controls a retry loop.
type Config struct {
	// Attempts is the total invocation budget. Values below 1 are treated as
	// 1: the operation always runs at least once.
	Attempts int

	// Delay is the fixed wait between attempts. Zero gets DefaultDelay.
	Delay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Attempts < 1 {
		c.Attempts = 1
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	return c
}

// Do invokes op until it succeeds or the attempt budget is spent. The wait
// between attempts selects on ctx, so cancelling the context releases the
// caller immediately instead of sleeping out the delay. Exhaustion returns
// the last error wrapped in ErrExhausted.
func Do(ctx context.Context, cfg Config, op func(context.Context) error) error {
	cfg = cfg.withDefaults()
	log := slogx.FromContext(ctx)

	var lastErr error
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.Attempts {
			break
		}

		log.Warn("operation failed, retrying",
			"attempt", attempt,
			"remaining", cfg.Attempts-attempt,
			"delay", cfg.Delay.String(),
			"err", lastErr,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Delay):
		}
	}

	return fmt.Errorf("%w after %d attempt(s): %w", ErrExhausted, cfg.Attempts, lastErr)
}
