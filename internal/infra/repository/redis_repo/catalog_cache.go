package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

var ErrCatalogCacheMiss = errors.New("catalog cache miss")

const (
	catalogKey      = "catalog:products"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogCache 整份型錄的redis快取
// 收銀台開站讀一次，型錄異動時整份作廢
type CatalogCache struct {
	cache *redis.Client
}

func NewCatalogCache(cache *redis.Client) *CatalogCache {
	return &CatalogCache{cache: cache}
}

func (c *CatalogCache) Get(ctx context.Context) ([]model.Product, error) {
	payload, err := c.cache.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCatalogCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, fmt.Errorf("invalid catalog cache payload: %w", err)
	}
	return products, nil
}

func (c *CatalogCache) Set(ctx context.Context, products []model.Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return c.cache.Set(ctx, catalogKey, payload, catalogCacheTTL).Err()
}

// Invalidate 型錄寫入後作廢快取
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.cache.Del(ctx, catalogKey).Err()
}
