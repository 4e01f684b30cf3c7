package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/favourami/eventplanner/internal/api/metrics"
	"github.com/favourami/eventplanner/internal/core/domain"
)

const defaultContentTTL = 10 * time.Minute

// ContentCache keeps provider results for a while.
// Key format: planner:shop:<category>:<lowercased query>
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a ContentCache. A non-positive ttl selects the
// default of ten minutes.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl <= 0 {
		ttl = defaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

func (c *ContentCache) Get(ctx context.Context, category domain.ShopCategory, query string) ([]domain.ShopItem, bool, error) {
	raw, err := c.client.Get(ctx, contentKey(category, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ShopCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("content cache get: %w", err)
	}

	var items []domain.ShopItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// treat a corrupt entry as a miss; the next Put overwrites it
		metrics.ShopCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	metrics.ShopCacheTotal.WithLabelValues("hit").Inc()
	return items, true, nil
}

func (c *ContentCache) Put(ctx context.Context, category domain.ShopCategory, query string, items []domain.ShopItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("content cache encode: %w", err)
	}
	return c.client.Set(ctx, contentKey(category, query), raw, c.ttl).Err()
}

func contentKey(category domain.ShopCategory, query string) string {
	return fmt.Sprintf("planner:shop:%s:%s", category, strings.ToLower(strings.TrimSpace(query)))
}
