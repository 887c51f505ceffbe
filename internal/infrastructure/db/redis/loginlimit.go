package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts consecutive failed logins per username in Redis.
// Key format: login_failures:<username>, expiring after the window so a
// locked-out account recovers on its own.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// TooManyFailures reports whether the username has reached the failure limit.
func (l *LoginLimiter) TooManyFailures(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= int64(l.max), nil
}

// RecordFailure increments the failure counter and starts the expiry window
// on the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Clear resets the counter after a successful login.
func (l *LoginLimiter) Clear(ctx context.Context, username string) error {
	return l.client.Del(ctx, l.key(username)).Err()
}

func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("login_failures:%s", username)
}
