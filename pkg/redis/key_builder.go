package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyTravelReviewAgg builds the cache key for a travel's review aggregate.
func (kb *KeyBuilder) KeyTravelReviewAgg(travelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTravelReviewAgg, travelID))
}

// KeyGuideRating builds the cache key for a user's guide rating average.
func (kb *KeyBuilder) KeyGuideRating(userID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGuideRating, userID))
}

// KeyTravelBookmarks builds the cache key for a travel's bookmark count.
func (kb *KeyBuilder) KeyTravelBookmarks(travelID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyTravelBookmarks, travelID))
}
