package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"slotsense/models"

	"github.com/go-redis/redis/v8"
)

const normCachePrefix = "norm:cache:"

// NormalizationCache keeps recent normalizer output in Redis so a retried
// webhook does not pay for a second model round-trip. The prompt embeds the
// current date, so keys incorporate it and entries expire with a short TTL.
type NormalizationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewNormalizationCache(client *redis.Client, ttl time.Duration) *NormalizationCache {
	return &NormalizationCache{client: client, ttl: ttl}
}

func (c *NormalizationCache) Get(ctx context.Context, key string) (*models.NormalizedBooking, error) {
	data, err := c.client.Get(ctx, normCachePrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var booking models.NormalizedBooking
	if err := json.Unmarshal([]byte(data), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *NormalizationCache) Set(ctx context.Context, key string, booking models.NormalizedBooking) error {
	b, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, normCachePrefix+key, b, c.ttl).Err()
}
