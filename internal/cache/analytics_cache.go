package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invensight/backend-go/internal/config"
	"github.com/invensight/backend-go/internal/domain"
)

const (
	insightKeyPrefix  = "analytics:insights"
	forecastKeyPrefix = "analytics:forecast"
	scanBatchSize     = 100
)

// AnalyticsCache caches the analyzer's derived output. Entries expire on
// a short TTL; the engine recomputes from scratch on every miss.
type AnalyticsCache interface {
	GetInsights(ctx context.Context, filter domain.AnalysisFilter) ([]domain.StrategicInsight, bool, error)
	SetInsights(ctx context.Context, filter domain.AnalysisFilter, insights []domain.StrategicInsight) error
	GetForecasts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.ProductForecast, bool, error)
	SetForecasts(ctx context.Context, filter domain.AnalysisFilter, forecasts []domain.ProductForecast) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{client: client, ttl: ttl}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) GetInsights(ctx context.Context, filter domain.AnalysisFilter) ([]domain.StrategicInsight, bool, error) {
	var insights []domain.StrategicInsight
	ok, err := c.get(ctx, buildKey(insightKeyPrefix, filter), &insights)
	return insights, ok, err
}

func (c *redisAnalyticsCache) SetInsights(ctx context.Context, filter domain.AnalysisFilter, insights []domain.StrategicInsight) error {
	return c.set(ctx, buildKey(insightKeyPrefix, filter), insights)
}

func (c *redisAnalyticsCache) GetForecasts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.ProductForecast, bool, error) {
	var forecasts []domain.ProductForecast
	ok, err := c.get(ctx, buildKey(forecastKeyPrefix, filter), &forecasts)
	return forecasts, ok, err
}

func (c *redisAnalyticsCache) SetForecasts(ctx context.Context, filter domain.AnalysisFilter, forecasts []domain.ProductForecast) error {
	return c.set(ctx, buildKey(forecastKeyPrefix, filter), forecasts)
}

func (c *redisAnalyticsCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, insightKeyPrefix, scanBatchSize); err != nil {
		return err
	}
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, scanBatchSize)
}

func (c *redisAnalyticsCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode analytics cache: %w", err)
	}

	return true, nil
}

func (c *redisAnalyticsCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode analytics cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopAnalyticsCache) GetInsights(ctx context.Context, filter domain.AnalysisFilter) ([]domain.StrategicInsight, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetInsights(ctx context.Context, filter domain.AnalysisFilter, insights []domain.StrategicInsight) error {
	return nil
}

func (n *noopAnalyticsCache) GetForecasts(ctx context.Context, filter domain.AnalysisFilter) ([]domain.ProductForecast, bool, error) {
	return nil, false, nil
}

func (n *noopAnalyticsCache) SetForecasts(ctx context.Context, filter domain.AnalysisFilter, forecasts []domain.ProductForecast) error {
	return nil
}

func (n *noopAnalyticsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildKey(prefix string, filter domain.AnalysisFilter) string {
	return fmt.Sprintf("%s:%s", prefix, filterHash(filter))
}

// filterHash derives a stable key from the normalized filter so that
// permutations of the same filter share one cache entry.
func filterHash(filter domain.AnalysisFilter) string {
	parts := []string{}

	if filter.Limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(filter.Limit))
	}
	if len(filter.LocationIDs) > 0 {
		ids := append([]string(nil), filter.LocationIDs...)
		for i := range ids {
			ids[i] = strings.ToLower(strings.TrimSpace(ids[i]))
		}
		sort.Strings(ids)
		parts = append(parts, "location_ids="+strings.Join(ids, ","))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
