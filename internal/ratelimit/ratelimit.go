package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindow is a Redis-backed fixed-window counter. The first hit in a
// window starts the clock; once the limit is reached further hits are
// denied until the window key expires.
type FixedWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewFixedWindow(rdb *redis.Client, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{rdb: rdb, limit: limit, window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
// When Redis is unavailable the request is allowed through.
func (f *FixedWindow) Allow(ctx context.Context, key string) bool {
	k := fmt.Sprintf("ratelimit:%s", key)

	n, err := f.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true
	}
	if n == 1 {
		f.rdb.Expire(ctx, k, f.window)
	}
	return n <= int64(f.limit)
}
