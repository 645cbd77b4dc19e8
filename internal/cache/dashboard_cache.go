package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inventopredict/backend-go/internal/config"
	"github.com/inventopredict/backend-go/internal/domain"
)

const (
	dashboardKeyPrefix = "dashboard:product"
	dashboardScanBatch = 100
)

// DashboardCache caches per-product dashboard payloads. Predictions change
// only when a new dataset lands, so a short TTL is enough.
type DashboardCache interface {
	Get(ctx context.Context, productID int64) (*domain.ProductDashboard, bool, error)
	Set(ctx context.Context, productID int64, dashboard *domain.ProductDashboard) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func dashboardKey(productID int64) string {
	return fmt.Sprintf("%s:%d", dashboardKeyPrefix, productID)
}

func (c *redisDashboardCache) Get(ctx context.Context, productID int64) (*domain.ProductDashboard, bool, error) {
	payload, err := c.client.Get(ctx, dashboardKey(productID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var dashboard domain.ProductDashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}

	return &dashboard, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, productID int64, dashboard *domain.ProductDashboard) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, dashboardKey(productID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return dropByPrefix(ctx, c.client, dashboardKeyPrefix, dashboardScanBatch)
}

func (n *noopDashboardCache) Get(ctx context.Context, productID int64) (*domain.ProductDashboard, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, productID int64, dashboard *domain.ProductDashboard) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}
