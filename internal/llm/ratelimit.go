package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// rateLimiter implements a simple token bucket refilled lazily on acquire.
type rateLimiter struct {
	lastRefill time.Time
	now        func() time.Time
	tokens     int
	capacity   int
	interval   time.Duration
	mu         sync.Mutex
}

// newRateLimiter creates a new rate limiter with the specified requests per minute.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	return &rateLimiter{
		tokens:     requestsPerMinute,
		capacity:   requestsPerMinute,
		interval:   time.Minute / time.Duration(requestsPerMinute),
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	ticker := time.NewTicker(rl.pollInterval())
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// tryAcquire attempts to acquire a token without blocking.
func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

func (rl *rateLimiter) refillLocked() {
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill)
	if elapsed < rl.interval {
		return
	}
	earned := int(elapsed / rl.interval)
	rl.tokens = min(rl.capacity, rl.tokens+earned)
	rl.lastRefill = rl.lastRefill.Add(time.Duration(earned) * rl.interval)
}

func (rl *rateLimiter) pollInterval() time.Duration {
	return min(rl.interval, 100*time.Millisecond)
}

// RateLimited wraps a Completer with a requests-per-minute budget.
type RateLimited struct {
	next    Completer
	limiter *rateLimiter
}

// NewRateLimited wraps next so at most requestsPerMinute calls start per minute.
func NewRateLimited(next Completer, requestsPerMinute int) *RateLimited {
	return &RateLimited{next: next, limiter: newRateLimiter(requestsPerMinute)}
}

// Complete waits for a token then delegates.
func (r *RateLimited) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	if err := r.limiter.wait(ctx); err != nil {
		return Completion{}, err
	}
	return r.next.Complete(ctx, req)
}
