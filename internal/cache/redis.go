// Package cache provides Redis caching utilities with graceful degradation.
// When no Redis client is configured every operation becomes a no-op, so the
// application runs correctly without a cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"plume/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// metricsHook counts failed Redis commands.
type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			middleware.RedisErrors.WithLabelValues("dial").Inc()
		}
		return conn, err
	}
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to Redis at the given URL or host:port address. A failed
// connection is logged and leaves caching disabled rather than aborting
// startup.
func InitRedis(redisURL string) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		// Plain host:port form
		opts = &redis.Options{Addr: redisURL}
	}

	c := redis.NewClient(opts)
	c.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, caching disabled", "error", err)
		return
	}

	client = c
	middleware.Logger.Info("Redis connection established", "addr", opts.Addr)
}

// SetClient replaces the active client. Tests use this with miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the active Redis client, or nil when caching is disabled.
func GetClient() *redis.Client {
	return client
}

// Aside implements the cache-aside pattern: return the cached value if
// present, otherwise call fetch, cache its result, and return it. Cache
// errors degrade to a direct fetch.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if client != nil {
		if raw, err := json.Marshal(value); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}

	return value, nil
}

// Invalidate removes the given keys from the cache.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}
