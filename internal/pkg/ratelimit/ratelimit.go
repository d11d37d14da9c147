// Package ratelimit counts requests per key in fixed windows.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes the state of a key after one request was counted
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts a request against key and reports whether it is within limit
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) (Result, error)
}

func newResult(count int64, limit int, resetAt time.Time) Result {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// RedisLimiter shares counters between instances through Redis INCR and PEXPIRE
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	prefix string
}

// NewRedis creates a Redis-backed limiter
func NewRedis(client *redis.Client, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, prefix: "schoolhub:ratelimit:"}
}

// Allow implements Limiter
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int) (Result, error) {
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit counter: %w", err)
	}
	// the first request of a window starts its expiry
	if count == 1 {
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		return newResult(count, limit, time.Now().Add(l.window)), nil
	}

	ttl, err := l.client.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// a crash between INCR and PEXPIRE left the key without expiry
		if err := l.client.PExpire(ctx, k, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		ttl = l.window
	}
	return newResult(count, limit, time.Now().Add(ttl)), nil
}

type bucket struct {
	count   int64
	resetAt time.Time
}

// MemoryLimiter keeps counters in process
type MemoryLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	now       func() time.Time
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewMemory creates an in-process limiter
func NewMemory(window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow implements Limiter
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.window {
		for k, b := range l.buckets {
			if !now.Before(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return newResult(b.count, limit, b.resetAt), nil
}
