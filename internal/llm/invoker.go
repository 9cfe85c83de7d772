package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/telemetry"
)

// ModelUsed identifies which rung of the ladder produced the accepted output.
type ModelUsed string

const (
	ModelFast     ModelUsed = "fast"
	ModelRobust   ModelUsed = "robust"
	ModelFallback ModelUsed = "fallback"
)

// ErrExhausted is returned when both models failed and the caller's policy
// does not allow degrading to the deterministic fallback.
var ErrExhausted = errors.New("all analysis models exhausted")

const (
	defaultFastRetries   = 3
	defaultRobustRetries = 1
	defaultBaseDelay     = 2 * time.Second
	defaultMaxDelay      = 30 * time.Second
)

// InvocationResult records the accepted output and its provenance. ModelUsed
// always names the model that actually produced RawText.
type InvocationResult struct {
	RawText   string
	ModelUsed ModelUsed
	Attempts  int
}

// Invoker runs the fast→robust→fallback ladder:
//
//	fast attempt ─ retryable failure ─→ backoff, retry fast (bounded)
//	             ─ non-retryable or retries exhausted ─→ robust attempt (own budget)
//	robust failure ─→ deterministic fallback, or ErrExhausted if none given
type Invoker struct {
	Fast   Client
	Robust Client

	FastRetries   int
	RobustRetries int
	BaseDelay     time.Duration
	MaxDelay      time.Duration

	// sleep is swapped out by tests to observe backoff without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// Invoke walks the ladder. fallback may be nil when the calling flow must
// surface model exhaustion instead of degrading.
func (iv *Invoker) Invoke(ctx context.Context, req Request, fallback func() string) (InvocationResult, error) {
	attempts := 0

	raw, err := iv.attemptModel(ctx, iv.Fast, iv.fastRetries(), req, &attempts)
	if err == nil {
		return InvocationResult{RawText: raw, ModelUsed: ModelFast, Attempts: attempts}, nil
	}
	if ctx.Err() != nil {
		return InvocationResult{Attempts: attempts}, ctx.Err()
	}

	telemetry.Warn("llm.escalating", map[string]any{
		"from":     iv.Fast.Model(),
		"to":       iv.Robust.Model(),
		"attempts": attempts,
		"err":      err.Error(),
	})

	raw, err = iv.attemptModel(ctx, iv.Robust, iv.robustRetries(), req, &attempts)
	if err == nil {
		return InvocationResult{RawText: raw, ModelUsed: ModelRobust, Attempts: attempts}, nil
	}
	if ctx.Err() != nil {
		return InvocationResult{Attempts: attempts}, ctx.Err()
	}

	if fallback == nil {
		return InvocationResult{Attempts: attempts}, fmt.Errorf("%w: %w", ErrExhausted, err)
	}

	telemetry.Warn("llm.degraded", map[string]any{
		"attempts": attempts,
		"err":      err.Error(),
	})
	return InvocationResult{RawText: fallback(), ModelUsed: ModelFallback, Attempts: attempts}, nil
}

// attemptModel retries one model on retryable failures up to maxRetries
// extra attempts, sleeping between attempts. Non-retryable failures abort
// the budget immediately.
func (iv *Invoker) attemptModel(ctx context.Context, client Client, maxRetries int, req Request, attempts *int) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		*attempts++
		raw, err := client.Generate(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		retryable, ok := AsRetryable(err)
		if !ok || attempt >= maxRetries {
			return "", lastErr
		}

		delay := iv.backoffDelay(attempt, retryable)
		telemetry.Warn("llm.retrying", map[string]any{
			"model":    client.Model(),
			"attempt":  attempt + 1,
			"delay_ms": delay.Milliseconds(),
			"status":   retryable.Status,
		})
		if err := iv.doSleep(ctx, delay); err != nil {
			return "", err
		}
	}
}

// backoffDelay prefers the server-supplied retry hint; otherwise the base
// delay doubles per attempt, capped at MaxDelay.
func (iv *Invoker) backoffDelay(attempt int, retryable *RetryableError) time.Duration {
	if retryable.RetryAfter > 0 {
		return retryable.RetryAfter
	}
	delay := iv.baseDelay() << uint(attempt)
	if max := iv.maxDelay(); delay > max {
		delay = max
	}
	return delay
}

func (iv *Invoker) doSleep(ctx context.Context, d time.Duration) error {
	if iv.sleep != nil {
		return iv.sleep(ctx, d)
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (iv *Invoker) fastRetries() int {
	if iv.FastRetries > 0 {
		return iv.FastRetries
	}
	return defaultFastRetries
}

func (iv *Invoker) robustRetries() int {
	if iv.RobustRetries > 0 {
		return iv.RobustRetries
	}
	return defaultRobustRetries
}

func (iv *Invoker) baseDelay() time.Duration {
	if iv.BaseDelay > 0 {
		return iv.BaseDelay
	}
	return defaultBaseDelay
}

func (iv *Invoker) maxDelay() time.Duration {
	if iv.MaxDelay > 0 {
		return iv.MaxDelay
	}
	return defaultMaxDelay
}
