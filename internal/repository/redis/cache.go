package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmmitra/FarmMitraGo/internal/domain"
	apperrors "github.com/farmmitra/FarmMitraGo/pkg/errors"
)

const (
	marketKey        = "market:snapshot"
	weatherKeyPrefix = "weather:"
)

// MarketCache stores the current market snapshot in Redis so repeated
// reads within the TTL window see consistent prices.
type MarketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMarketCache creates a new Redis-backed market snapshot cache.
func NewMarketCache(client *redis.Client, ttl time.Duration) *MarketCache {
	return &MarketCache{
		client: client,
		ttl:    ttl,
	}
}

// GetSnapshot retrieves the cached market snapshot.
func (c *MarketCache) GetSnapshot(ctx context.Context) (*domain.MarketSnapshot, error) {
	data, err := c.client.Get(ctx, marketKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("market snapshot", "current")
		}
		return nil, fmt.Errorf("redis get market snapshot: %w", err)
	}

	var snapshot domain.MarketSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal market snapshot: %w", err)
	}

	return &snapshot, nil
}

// SaveSnapshot stores the market snapshot with the configured TTL.
func (c *MarketCache) SaveSnapshot(ctx context.Context, snapshot *domain.MarketSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal market snapshot: %w", err)
	}

	if err := c.client.Set(ctx, marketKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set market snapshot: %w", err)
	}

	return nil
}

// WeatherCache stores per-location weather reports in Redis to limit
// calls to the upstream weather provider.
type WeatherCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeatherCache creates a new Redis-backed weather report cache.
func NewWeatherCache(client *redis.Client, ttl time.Duration) *WeatherCache {
	return &WeatherCache{
		client: client,
		ttl:    ttl,
	}
}

// GetReport retrieves a cached weather report for the given location key.
func (c *WeatherCache) GetReport(ctx context.Context, locationKey string) (*domain.WeatherReport, error) {
	data, err := c.client.Get(ctx, weatherKeyPrefix+locationKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("weather report", locationKey)
		}
		return nil, fmt.Errorf("redis get weather report: %w", err)
	}

	var report domain.WeatherReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal weather report: %w", err)
	}

	return &report, nil
}

// SaveReport stores a weather report for the given location key with the configured TTL.
func (c *WeatherCache) SaveReport(ctx context.Context, locationKey string, report *domain.WeatherReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal weather report: %w", err)
	}

	if err := c.client.Set(ctx, weatherKeyPrefix+locationKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set weather report: %w", err)
	}

	return nil
}
