package cache

import (
	"invoice-dashboard-backend/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New picks the Redis backend when a client is available and falls back to memory.
func New(cfg config.Config, client *redis.Client, log *zap.Logger) PageCache {
	if client == nil {
		log.Info("page cache: in-memory")
		return NewMemoryCache(cfg.CacheTTL)
	}
	log.Info("page cache: redis", zap.String("addr", cfg.RedisAddr))
	return NewRedisCache(client, cfg.CacheTTL, log)
}

var Module = fx.Module("cache",
	fx.Provide(
		New,
		func(c PageCache) Revalidator { return c },
	),
)
