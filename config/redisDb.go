package config

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin JSON read-through cache over redis. Every method is
// safe to call on a Cache with a nil client: lookups miss and writes
// are dropped, so the application keeps working from the database alone.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// ConnectRedis returns nil when REDIS_ADDRESS is not configured.
func ConnectRedis() *redis.Client {
	address := os.Getenv("REDIS_ADDRESS")
	if address == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis not reachable at %s: %v; continuing without cache", address, err)
		return nil
	}
	return client
}

func (c *Cache) GetObject(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetObject(ctx context.Context, key string, value any, expiration time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Remove(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func CacheLifespan() time.Duration {
	lifespan := intFromEnv("CACHE_LIFESPAN_HOURS", 1)
	return time.Duration(lifespan) * time.Hour
}
