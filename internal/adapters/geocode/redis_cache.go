package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mr-mukherjee03/multi-agentic-travel-planner/internal/domain"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed shared store for geocode results,
// letting multiple server instances reuse each other's lookups.
type RedisGeocodeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGeocodeCache(rdb *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisGeocodeCache{rdb: rdb, ttl: ttl}
}

type cachedCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Get fetches a cached coordinate for the place key.
func (c *RedisGeocodeCache) Get(ctx context.Context, place string) (domain.Coordinates, bool, error) {
	if c.rdb == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := c.rdb.Get(ctx, redisKeyPrefix+place).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var v cachedCoordinate
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: decode entry: %w", err)
	}

	return domain.Coordinates{Lat: v.Lat, Lon: v.Lon}, true, nil
}

// Put stores a coordinate under the place key with the cache TTL.
func (c *RedisGeocodeCache) Put(ctx context.Context, place string, coord domain.Coordinates) error {
	if c.rdb == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	raw, err := json.Marshal(cachedCoordinate{Lat: coord.Lat, Lon: coord.Lon})
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode entry: %w", err)
	}

	if err := c.rdb.Set(ctx, redisKeyPrefix+place, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
