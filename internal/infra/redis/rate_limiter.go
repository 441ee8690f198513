package redis

import (
	"context"
	"time"

	"study-notes-backend/internal/usecase"
)

var _ usecase.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a fixed-window counter: INCR per key, EXPIRE on the first
// hit, deny once the count exceeds the limit.
type RateLimiter struct {
	client *Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Incr(ctx, "rate_limit:"+key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, "rate_limit:"+key, r.window); err != nil {
			return false, err
		}
	}
	return count <= int64(r.limit), nil
}
