package utils

import (
	"context"
	"time"

	"slotsense/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient backs the optional normalization cache. Nil when Redis is not configured.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. The cache is optional: when no
// REDIS_ADDR is configured the service runs without it, and a failed ping only
// logs a warning rather than aborting startup.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("Redis not configured, normalization cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Failed to connect to Redis, normalization cache disabled", zap.Error(err))
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, which may be nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
