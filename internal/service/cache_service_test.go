package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travely-api/internal/domain"
)

func TestCacheServiceTravelReviewAggregate(t *testing.T) {
	travelID := "507f1f77bcf86cd799439011"

	t.Run("miss loads and caches", func(t *testing.T) {
		cache, client := newTestCacheWithClient(t)
		loaded := domain.ReviewAggregate{TravelScore: 4.5, ReviewCnt: 2}

		agg, err := cache.TravelReviewAggregate(context.Background(), travelID,
			func(ctx context.Context) (domain.ReviewAggregate, error) {
				return loaded, nil
			})

		require.NoError(t, err)
		assert.Equal(t, loaded, agg)

		// Caching happens off the request path.
		key := client.KeyBuilder.KeyTravelReviewAgg(travelID)
		assert.Eventually(t, func() bool {
			n, err := client.Exists(context.Background(), key)
			return err == nil && n == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("hit skips the loader", func(t *testing.T) {
		cache, client := newTestCacheWithClient(t)
		key := client.KeyBuilder.KeyTravelReviewAgg(travelID)
		require.NoError(t, client.Set(context.Background(), key,
			`{"travelScore":3.5,"reviewCnt":4}`, time.Minute))

		agg, err := cache.TravelReviewAggregate(context.Background(), travelID,
			func(ctx context.Context) (domain.ReviewAggregate, error) {
				t.Fatal("loader must not run on a cache hit")
				return domain.ReviewAggregate{}, nil
			})

		require.NoError(t, err)
		assert.InDelta(t, 3.5, agg.TravelScore, 0.001)
		assert.Equal(t, int64(4), agg.ReviewCnt)
	})

	t.Run("corrupted entry falls back to the loader", func(t *testing.T) {
		cache, client := newTestCacheWithClient(t)
		key := client.KeyBuilder.KeyTravelReviewAgg(travelID)
		require.NoError(t, client.Set(context.Background(), key, "{not json", time.Minute))

		agg, err := cache.TravelReviewAggregate(context.Background(), travelID,
			func(ctx context.Context) (domain.ReviewAggregate, error) {
				return domain.ReviewAggregate{TravelScore: 5, ReviewCnt: 1}, nil
			})

		require.NoError(t, err)
		assert.Equal(t, int64(1), agg.ReviewCnt)
	})

	t.Run("loader failure surfaces", func(t *testing.T) {
		cache, _ := newTestCacheWithClient(t)

		_, err := cache.TravelReviewAggregate(context.Background(), travelID,
			func(ctx context.Context) (domain.ReviewAggregate, error) {
				return domain.ReviewAggregate{}, errors.New("db down")
			})

		assert.Error(t, err)
	})
}

func TestCacheServiceGuideRating(t *testing.T) {
	userID := "507f1f77bcf86cd799439012"

	t.Run("hit parses the cached float", func(t *testing.T) {
		cache, client := newTestCacheWithClient(t)
		key := client.KeyBuilder.KeyGuideRating(userID)
		require.NoError(t, client.Set(context.Background(), key, "4.3", time.Minute))

		rating, err := cache.GuideRating(context.Background(), userID,
			func(ctx context.Context) (float64, error) {
				t.Fatal("loader must not run on a cache hit")
				return 0, nil
			})

		require.NoError(t, err)
		assert.InDelta(t, 4.3, rating, 0.001)
	})

	t.Run("miss loads", func(t *testing.T) {
		cache, _ := newTestCacheWithClient(t)

		rating, err := cache.GuideRating(context.Background(), userID,
			func(ctx context.Context) (float64, error) {
				return 3.8, nil
			})

		require.NoError(t, err)
		assert.InDelta(t, 3.8, rating, 0.001)
	})
}

func TestCacheServiceInvalidateReviewAggregates(t *testing.T) {
	travelID := "507f1f77bcf86cd799439011"
	ownerID := "507f1f77bcf86cd799439012"

	cache, client := newTestCacheWithClient(t)
	ctx := context.Background()
	aggKey := client.KeyBuilder.KeyTravelReviewAgg(travelID)
	ratingKey := client.KeyBuilder.KeyGuideRating(ownerID)
	require.NoError(t, client.Set(ctx, aggKey, `{"travelScore":4,"reviewCnt":1}`, time.Minute))
	require.NoError(t, client.Set(ctx, ratingKey, "4.0", time.Minute))

	cache.InvalidateReviewAggregates(travelID, ownerID)

	assert.Eventually(t, func() bool {
		n, err := client.Exists(ctx, aggKey, ratingKey)
		return err == nil && n == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCacheServiceInvalidateBookmarkCount(t *testing.T) {
	travelID := "507f1f77bcf86cd799439011"

	cache, client := newTestCacheWithClient(t)
	ctx := context.Background()
	key := client.KeyBuilder.KeyTravelBookmarks(travelID)
	require.NoError(t, client.Set(ctx, key, "9", time.Minute))

	cache.InvalidateBookmarkCount(travelID)

	assert.Eventually(t, func() bool {
		n, err := client.Exists(ctx, key)
		return err == nil && n == 0
	}, time.Second, 10*time.Millisecond)
}

func TestCacheServiceHealthCheck(t *testing.T) {
	cache, _ := newTestCacheWithClient(t)
	assert.NoError(t, cache.HealthCheck(context.Background()))
}
