package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	attemptWindow      = 15 * time.Minute
)

// LoginLimiter throttles failed login attempts per username, backed by
// a Redis counter with a sliding-window TTL.
// Key format: login_attempts:<username>
type LoginLimiter struct {
	client *redis.Client
	max    int64
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis
// client. maxAttempts <= 0 falls back to the default.
func NewLoginLimiter(client *redis.Client, maxAttempts int) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &LoginLimiter{client: client, max: int64(maxAttempts)}
}

// TooManyAttempts reports whether the username has exhausted its
// allowed failures inside the current window.
func (l *LoginLimiter) TooManyAttempts(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure increments the failure counter and refreshes the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, attemptWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("limiter record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}
