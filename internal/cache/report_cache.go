// internal/cache/report_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/reposia/internal/config"
	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "replenishment:report"
	reportScanBatchSize = 100
)

// ReportCache caches branch reports between pipeline runs so repeated
// report requests don't hit the ERP mirror.
type ReportCache interface {
	GetReport(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) (*domain.ReplenishmentReport, bool, error)
	SetReport(ctx context.Context, report *domain.ReplenishmentReport) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) (*domain.ReplenishmentReport, bool, error) {
	key := buildReportKey(branch, lookback)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.ReplenishmentReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, report *domain.ReplenishmentReport) error {
	key := buildReportKey(report.Branch, report.Lookback)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, reportScanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, branch domain.BranchID, lookback domain.Lookback) (*domain.ReplenishmentReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, report *domain.ReplenishmentReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(branch domain.BranchID, lookback domain.Lookback) string {
	return fmt.Sprintf("%s:%s:%d", reportKeyPrefix, branch, lookback)
}
