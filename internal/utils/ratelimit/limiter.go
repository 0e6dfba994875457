// Package ratelimit provides rate limiting for the public authentication
// endpoints. Two implementations share the Checker interface: an in-process
// token bucket store and a Redis fixed-window counter for multi-instance
// deployments.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// Decision is the outcome of a single rate limit check.
type Decision struct {
	// Allowed reports whether the request may proceed
	Allowed bool

	// Limit is the configured burst or window budget
	Limit int

	// Remaining is the number of further requests currently allowed
	Remaining int

	// RetryAfter is how long a rejected client should wait
	RetryAfter time.Duration
}

// Checker decides whether the client identified by clientID may make another
// request in the given category.
type Checker interface {
	Allow(ctx context.Context, clientID, category string) (Decision, error)
}

// Limiter represents a rate limiter for a specific client identity.
// It implements a token bucket algorithm where tokens are added at a
// fixed rate and requests consume tokens from the bucket.
type Limiter struct {
	// tokens is the current number of tokens in the bucket
	tokens float64

	// lastTime is the last time tokens were added to the bucket
	lastTime time.Time

	// rate is the token refill rate (tokens per second)
	rate float64

	// capacity is the maximum number of tokens the bucket can hold
	capacity float64

	now func() time.Time

	mu sync.Mutex
}

// Rate controls how many requests per second are allowed
type Rate struct {
	// RequestsPerSecond defines how many tokens are added per second
	RequestsPerSecond float64

	// Burst defines the maximum size of the token bucket
	Burst int
}

// PerMinute builds a Rate from a requests-per-minute budget.
func PerMinute(requests, burst int) Rate {
	return Rate{RequestsPerSecond: float64(requests) / 60, Burst: burst}
}

// NewLimiter creates a new rate limiter with the specified rate and burst capacity.
//
// Parameters:
//   - rate: The number of tokens per second to add to the bucket
//   - burst: The maximum capacity of the bucket
func NewLimiter(rate float64, burst int) *Limiter {
	return newLimiterWithClock(rate, burst, time.Now)
}

func newLimiterWithClock(rate float64, burst int, now func() time.Time) *Limiter {
	return &Limiter{
		tokens:   float64(burst),
		lastTime: now(),
		rate:     rate,
		capacity: float64(burst),
		now:      now,
	}
}

// Allow checks if a request should be allowed based on the rate limit.
func (l *Limiter) Allow() bool {
	return l.Take().Allowed
}

// Take consumes a token if one is available and reports the resulting state.
func (l *Limiter) Take() Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill()

	decision := Decision{Limit: int(l.capacity)}
	if l.tokens < 1 {
		decision.RetryAfter = l.timeUntilToken()
		return decision
	}

	l.tokens--
	decision.Allowed = true
	decision.Remaining = int(math.Floor(l.tokens))
	return decision
}

// refill adds the tokens accrued since the last call. Caller holds mu.
func (l *Limiter) refill() {
	now := l.now()
	elapsed := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	l.tokens += elapsed * l.rate
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
}

// timeUntilToken reports when the next whole token becomes available. Caller holds mu.
func (l *Limiter) timeUntilToken() time.Duration {
	if l.rate <= 0 {
		return time.Duration(math.MaxInt64)
	}
	missing := 1 - l.tokens
	return time.Duration(math.Ceil(missing / l.rate * float64(time.Second)))
}

// lastSeen returns the time of the most recent Take.
func (l *Limiter) lastSeen() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastTime
}

// ResetTokens refills the bucket.
func (l *Limiter) ResetTokens() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = l.capacity
	l.lastTime = l.now()
}
