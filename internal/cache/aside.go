package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pulse/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: return the cached value at key if
// present, otherwise call load, cache the result and return it. dest must be
// a pointer. A missing or broken cache never fails the call, the loader is
// the source of truth.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry, drop it and fall through to the loader
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.Warn("cache read failed", "key", key, "error", err)
	}

	if err := load(); err != nil {
		return err
	}

	if data, marshalErr := json.Marshal(dest); marshalErr == nil {
		if setErr := client.Set(ctx, key, data, ttl).Err(); setErr != nil {
			middleware.Logger.Warn("cache write failed", "key", key, "error", setErr)
		}
	}

	return nil
}
