package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/gottomy2/departures/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores weather temperatures in redis. Eviction is handled by
// the key TTL, so the cache never grows past what redis itself allows.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetTemperature(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.client.Get(ctx, temperatureKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, err
	}

	temp, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, err
	}
	return temp, true, nil
}

func (c *RedisCache) SetTemperature(ctx context.Context, key string, temp float64) error {
	return c.client.Set(ctx, temperatureKey(key), strconv.FormatFloat(temp, 'f', -1, 64), c.ttl).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func temperatureKey(key string) string {
	return "weather:temp:" + key
}
