package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "velora/internal/platform/redis"
)

const productListKey = "catalog:products"

// Cache keeps the unfiltered product listing in Redis so the storefront
// home page does not hit the database on every render. Any catalog
// mutation invalidates it. Cache failures degrade to the store: they are
// logged and never surface to the caller.
type Cache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func (c *Cache) GetProducts(ctx context.Context) ([]Product, bool) {
	raw, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.WarnContext(ctx, "corrupt catalog cache entry, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return products, true
}

func (c *Cache) SetProducts(ctx context.Context, products []Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productListKey, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to write catalog cache", "error", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate catalog cache", "error", err)
	}
}
