package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/altavia/voyager/config"
	"github.com/altavia/voyager/internal/domain"
)

// RedisCache keeps itinerary search results per (date, origin, destination)
// query. Cached entries embed seat counts, so every booking mutation bumps a
// namespace version instead of hunting down individual keys.
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

func (c *RedisCache) GetItineraries(ctx context.Context, date, origin, destination string) ([]domain.Itinerary, error) {
	key, err := c.itinerariesKey(ctx, date, origin, destination)
	if err != nil {
		return nil, err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var itineraries []domain.Itinerary
	if err := json.Unmarshal(data, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (c *RedisCache) SetItineraries(ctx context.Context, date, origin, destination string, itineraries []domain.Itinerary) error {
	key, err := c.itinerariesKey(ctx, date, origin, destination)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(itineraries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Invalidate bumps the namespace version; every cached search result becomes
// unreachable and ages out via TTL.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, versionKey()).Err()
}

func (c *RedisCache) itinerariesKey(ctx context.Context, date, origin, destination string) (string, error) {
	ver, err := c.client.Get(ctx, versionKey()).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("cache:itineraries:v%d:%s:%s:%s", ver, date, origin, destination), nil
}

func versionKey() string {
	return "cache:itineraries:version"
}
