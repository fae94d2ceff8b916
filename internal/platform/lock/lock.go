// Package lock provides the optional cross-process lock taken around document numbering.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/billing_ledger/internal/core/ports/services"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL      = 30 * time.Second
	retryBackoff = 20 * time.Millisecond
	retryLimit   = 100
)

// ErrNotObtained is returned when the lock stays taken for the whole retry window.
var ErrNotObtained = errors.New("could not obtain lock")

// NoopLocker is used when no Redis is configured. The database uniqueness
// constraint still guarantees correctness without it.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string) (func(context.Context), error) {
	return func(context.Context) {}, nil
}

// RedisLocker wraps a redislock client.
type RedisLocker struct {
	client *redislock.Client
	logger *slog.Logger
}

var (
	_ portssvc.Locker = NoopLocker{}
	_ portssvc.Locker = (*RedisLocker)(nil)
)

// NewRedisClient connects to redisURL. The client is shared by the numbering
// lock and the rate limit store.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func NewRedisLocker(rdb *redis.Client, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(context.Context), error) {
	lk, err := l.client.Obtain(ctx, key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryBackoff), retryLimit),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("Failed to release lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}
