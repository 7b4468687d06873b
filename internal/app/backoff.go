package app

import (
	"context"
	"fmt"
	"time"
)

// BackoffDelay returns the exponential delay to sleep after a failed
// attempt: baseDelay * 2^(attempt-1). Attempt numbers start at 1 and the
// first attempt has no prior delay.
func BackoffDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << uint(attempt-1)
}

// SleepFunc suspends the caller for d or until ctx is done. Injected into
// the retry paths so tests can run without wall-clock sleeps.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the production SleepFunc
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryWithBackoff runs fn up to maxRetries times with exponential backoff
// between attempts. Used by the summarizer collaterals (transcript and LLM
// calls); the download path has its own controller with failure
// classification.
func RetryWithBackoff(ctx context.Context, maxRetries int, baseDelay time.Duration, sleep SleepFunc, fn func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if sleep == nil {
		sleep = ContextSleep
	}
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if attempt == maxRetries {
			break
		}
		if err := sleep(ctx, BackoffDelay(baseDelay, attempt)); err != nil {
			return err
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
