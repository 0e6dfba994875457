package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter counts requests per client in fixed windows stored in Redis,
// so every instance behind a load balancer shares one budget.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a limiter allowing limit requests per window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

// NewRedisClient parses a redis:// URL and returns a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Allow implements Checker. On a Redis failure the request is allowed and
// the error returned so the caller can log it.
func (rl *RedisLimiter) Allow(ctx context.Context, clientID, category string) (Decision, error) {
	now := rl.now()
	windowStart := now.Truncate(rl.window)
	key := fmt.Sprintf("%s:%s:%s:%d", rl.prefix, category, clientID, windowStart.Unix())

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{Allowed: true, Limit: rl.limit, Remaining: rl.limit}, fmt.Errorf("redis error: %w", err)
	}

	count := int(incr.Val())
	decision := Decision{
		Allowed: count <= rl.limit,
		Limit:   rl.limit,
	}
	if decision.Allowed {
		decision.Remaining = rl.limit - count
	} else {
		decision.RetryAfter = windowStart.Add(rl.window).Sub(now)
	}
	return decision, nil
}

// Reset clears a client's counter for the current window.
func (rl *RedisLimiter) Reset(ctx context.Context, clientID, category string) error {
	windowStart := rl.now().Truncate(rl.window)
	key := fmt.Sprintf("%s:%s:%s:%d", rl.prefix, category, clientID, windowStart.Unix())
	return rl.client.Del(ctx, key).Err()
}

// Ping verifies Redis connectivity.
func (rl *RedisLimiter) Ping(ctx context.Context) error {
	return rl.client.Ping(ctx).Err()
}
