package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "invoice-dashboard"

// RedisCache shares cached views between server replicas. Each path owns a
// generation counter; page keys embed it, so Revalidate is a single INCR and
// superseded pages simply age out.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		log:    log.Named("cache.redis"),
	}
}

func (c *RedisCache) Get(ctx context.Context, path, query string) ([]byte, int64, bool) {
	gen, err := c.generation(ctx, path)
	if err != nil {
		c.log.Warn("read cache generation", zap.String("path", path), zap.Error(err))
		return nil, -1, false
	}

	body, err := c.client.Get(ctx, pageKey(path, gen, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false
	}
	if err != nil {
		c.log.Warn("read cached page", zap.String("path", path), zap.Error(err))
		return nil, gen, false
	}
	return body, gen, true
}

func (c *RedisCache) Set(ctx context.Context, path, query string, generation int64, body []byte) {
	if generation < 0 {
		return
	}
	if err := c.client.Set(ctx, pageKey(path, generation, query), body, c.ttl).Err(); err != nil {
		c.log.Warn("write cached page", zap.String("path", path), zap.Error(err))
	}
}

func (c *RedisCache) Revalidate(ctx context.Context, path string) error {
	return c.client.Incr(ctx, generationKey(path)).Err()
}

func (c *RedisCache) generation(ctx context.Context, path string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(path)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func generationKey(path string) string {
	return keyPrefix + ":gen:" + path
}

func pageKey(path string, generation int64, query string) string {
	return keyPrefix + ":page:" + path + ":" + strconv.FormatInt(generation, 10) + "?" + query
}
