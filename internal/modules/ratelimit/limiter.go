// README: Fixed-window request limiter backed by Redis counters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "ratelimit:itinerary:%s:%d"
	window    = time.Minute
)

// ErrLimited is returned by Check when the caller exceeded the window allowance.
var ErrLimited = errors.New("rate limit exceeded")

// Limiter counts requests per caller in one-minute windows.
type Limiter struct {
	redis *redis.Client
	limit int
	now   func() time.Time
}

// NewLimiter returns a Limiter allowing limit requests per minute per key.
// limit <= 0 disables limiting.
func NewLimiter(redis *redis.Client, limit int) *Limiter {
	return &Limiter{redis: redis, limit: limit, now: time.Now}
}

// Allow increments the caller's counter for the current window and reports
// whether the request is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	windowKey := fmt.Sprintf(keyPrefix, key, l.now().Unix()/int64(window.Seconds()))

	var incr *redis.IntCmd
	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, windowKey)
		pipe.Expire(ctx, windowKey, 2*window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}

// Check is Allow expressed as an error: ErrLimited when over the limit.
func (l *Limiter) Check(ctx context.Context, key string) error {
	ok, err := l.Allow(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLimited
	}
	return nil
}
