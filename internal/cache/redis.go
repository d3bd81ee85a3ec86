// Package cache manages the Redis connection used for rate limiting.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and verifies the connection. Returns nil when
// Redis is unreachable; callers treat a nil client as "no rate limiting".
func Connect(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unavailable, continuing without rate limiting", slog.String("error", err.Error()))
		return nil
	}

	slog.Info("Redis connected", slog.String("addr", addr))
	return client
}
