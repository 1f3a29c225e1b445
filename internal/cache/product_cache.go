// Package cache keeps the normalized product listing in Redis so browsing
// does not hammer the tabular source on every request. A cache failure is
// always survivable; callers fall back to a direct fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/acryfusion/storefront/internal/model"
	"github.com/go-redis/redis/v8"
)

const (
	productsKey = "catalog:products"

	// DefaultTTL bounds staleness after edits made directly in the
	// spreadsheet, which bypass cache invalidation.
	DefaultTTL = 5 * time.Minute
)

// ProductCache stores the full normalized listing under a single key.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache connects to Redis and verifies the connection.
func NewProductCache(ctx context.Context, addr string, ttl time.Duration) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{client: client, ttl: ttl}, nil
}

// Get returns the cached listing, or found=false on a miss.
func (c *ProductCache) Get(ctx context.Context) ([]model.Product, bool, error) {
	data, err := c.client.Get(ctx, productsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read products from cache: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached products: %w", err)
	}
	return products, true, nil
}

// Set stores the listing with the configured TTL.
func (c *ProductCache) Set(ctx context.Context, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products for cache: %w", err)
	}
	if err := c.client.Set(ctx, productsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write products to cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing. Called after every catalog write.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *ProductCache) Close() error {
	return c.client.Close()
}
