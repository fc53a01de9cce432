package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
)

const purgeBatch = 100

// NewRedis returns a Redis client. The connection is established lazily.
func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PurgeKeys deletes every Redis key matching one of patterns.
func PurgeKeys(ctx context.Context, rdb *redis.Client, patterns ...string) error {
	for _, pattern := range patterns {
		iter := rdb.Scan(ctx, 0, pattern, purgeBatch).Iterator()
		keys := make([]string, 0, purgeBatch)
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
			if len(keys) == purgeBatch {
				if err := rdb.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("purge %s: %w", pattern, err)
				}
				keys = keys[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("purge %s: %w", pattern, err)
			}
		}
	}
	return nil
}

// PurgeSessionState removes live sessions and cached profiles. Run it with a
// schema reset, since both refer to accounts the reset drops.
func PurgeSessionState(ctx context.Context, rdb *redis.Client) error {
	return PurgeKeys(ctx, rdb, append(auth.SessionKeyPatterns(), cache.ProfileKeyPattern)...)
}
