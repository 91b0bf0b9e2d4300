package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const recommendationTTL = 5 * time.Minute

var ErrCacheMiss = errors.New("cache miss")

// RecommendationCache keeps recently computed recommendation lists so
// repeated product-detail views don't rescore the whole catalog.
type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
	}
}

func cacheKey(productID, userID uint64, limit int) string {
	return fmt.Sprintf("reco:product:%d:user:%d:limit:%d", productID, userID, limit)
}

func (c *RecommendationCache) Get(ctx context.Context, productID, userID uint64, limit int) ([]domain.Product, error) {
	val, err := c.client.Get(ctx, cacheKey(productID, userID, limit)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read recommendation cache: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return products, nil
}

func (c *RecommendationCache) Set(ctx context.Context, productID, userID uint64, limit int, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	err = c.client.Set(ctx, cacheKey(productID, userID, limit), data, recommendationTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to write recommendation cache: %w", err)
	}

	return nil
}

// Invalidate drops every cached list for a product, e.g. after catalog
// updates.
func (c *RecommendationCache) Invalidate(ctx context.Context, productID uint64) error {
	pattern := fmt.Sprintf("reco:product:%d:*", productID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate recommendation cache: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan recommendation cache: %w", err)
	}

	return nil
}
