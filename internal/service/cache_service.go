package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"travely-api/internal/domain"
	"travely-api/pkg/redis"
)

// CacheService caches the derived aggregates (review average/count, guide
// rating, bookmark count) with a cache-aside pattern. Cache failures fall
// through to the loader; a cold cache is never an error.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// TravelReviewAggregate returns a travel's review aggregate, loading and
// caching it on a miss.
func (c *CacheService) TravelReviewAggregate(ctx context.Context, travelID string, loader func(ctx context.Context) (domain.ReviewAggregate, error)) (domain.ReviewAggregate, error) {
	cacheKey := c.redis.KeyBuilder.KeyTravelReviewAgg(travelID)

	cached, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var agg domain.ReviewAggregate
		if unmarshalErr := json.Unmarshal([]byte(cached), &agg); unmarshalErr == nil {
			c.logger.Debug("Review aggregate cache hit", zap.String("travel_id", travelID))
			return agg, nil
		}
		c.logger.Warn("Review aggregate cache corrupted, falling back to database",
			zap.String("travel_id", travelID))
	} else if err != nil && err != redis.ErrNil {
		c.logger.Warn("Review aggregate cache error, falling back to database",
			zap.String("travel_id", travelID),
			zap.Error(err))
	}

	agg, err := loader(ctx)
	if err != nil {
		return domain.ReviewAggregate{}, fmt.Errorf("review aggregate fallback failed: %w", err)
	}

	go c.cacheJSONAsync(cacheKey, agg, redis.TTLReviewAgg)
	return agg, nil
}

// GuideRating returns a user's guide rating average, loading and caching it
// on a miss.
func (c *CacheService) GuideRating(ctx context.Context, userID string, loader func(ctx context.Context) (float64, error)) (float64, error) {
	cacheKey := c.redis.KeyBuilder.KeyGuideRating(userID)

	cached, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		if rating, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
			c.logger.Debug("Guide rating cache hit", zap.String("user_id", userID))
			return rating, nil
		}
		c.logger.Warn("Guide rating cache corrupted, falling back to database",
			zap.String("user_id", userID))
	} else if err != nil && err != redis.ErrNil {
		c.logger.Warn("Guide rating cache error, falling back to database",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	rating, err := loader(ctx)
	if err != nil {
		return 0, fmt.Errorf("guide rating fallback failed: %w", err)
	}

	go c.cacheStringAsync(cacheKey, strconv.FormatFloat(rating, 'f', -1, 64), redis.TTLGuideRating)
	return rating, nil
}

// BookmarkCount returns a travel's bookmark count, loading and caching it on
// a miss.
func (c *CacheService) BookmarkCount(ctx context.Context, travelID string, loader func(ctx context.Context) (int64, error)) (int64, error) {
	cacheKey := c.redis.KeyBuilder.KeyTravelBookmarks(travelID)

	cached, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			c.logger.Debug("Bookmark count cache hit", zap.String("travel_id", travelID))
			return count, nil
		}
		c.logger.Warn("Bookmark count cache corrupted, falling back to database",
			zap.String("travel_id", travelID))
	} else if err != nil && err != redis.ErrNil {
		c.logger.Warn("Bookmark count cache error, falling back to database",
			zap.String("travel_id", travelID),
			zap.Error(err))
	}

	count, err := loader(ctx)
	if err != nil {
		return 0, fmt.Errorf("bookmark count fallback failed: %w", err)
	}

	go c.cacheStringAsync(cacheKey, strconv.FormatInt(count, 10), redis.TTLBookmarkCnt)
	return count, nil
}

// InvalidateReviewAggregates drops the cached aggregates that a review write
// touches: the travel's review aggregate and the owner's guide rating.
func (c *CacheService) InvalidateReviewAggregates(travelID, ownerID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		keys := []string{c.redis.KeyBuilder.KeyTravelReviewAgg(travelID)}
		if ownerID != "" {
			keys = append(keys, c.redis.KeyBuilder.KeyGuideRating(ownerID))
		}
		if err := c.redis.Delete(ctx, keys...); err != nil {
			c.logger.Error("Failed to invalidate review aggregate caches",
				zap.String("travel_id", travelID),
				zap.Error(err))
			return
		}
		c.logger.Debug("Review aggregate caches invalidated", zap.String("travel_id", travelID))
	}()
}

// InvalidateBookmarkCount drops the cached bookmark count after a bookmark write.
func (c *CacheService) InvalidateBookmarkCount(travelID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		key := c.redis.KeyBuilder.KeyTravelBookmarks(travelID)
		if err := c.redis.Delete(ctx, key); err != nil {
			c.logger.Error("Failed to invalidate bookmark count cache",
				zap.String("travel_id", travelID),
				zap.Error(err))
		}
	}()
}

// HealthCheck performs a health check on the cache system
func (c *CacheService) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.redis.Health(ctx)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("Cache health check failed",
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Cache health check passed", zap.Duration("duration", duration))
	return nil
}

func (c *CacheService) cacheJSONAsync(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("Failed to marshal value for caching", zap.Error(err))
		return
	}
	c.cacheStringAsync(key, string(data), ttl)
}

func (c *CacheService) cacheStringAsync(key, value string, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.redis.Set(ctx, key, value, ttl); err != nil {
		c.logger.Error("Failed to cache value", zap.Error(err))
	}
}
