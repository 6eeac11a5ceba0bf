package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark is a standalone membership record linking a user to a travel.
// The collection carries a unique (userId, travelId) index, so a pair can
// be bookmarked at most once regardless of concurrent requests.
type Bookmark struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	TravelID   primitive.ObjectID `bson:"travelId" json:"travelId"`
	BookmarkAt time.Time          `bson:"bookmarkAt" json:"bookmarkAt"`
}

// BookmarkRequest adds or removes a bookmark for a (user, travel) pair.
type BookmarkRequest struct {
	UserID   string `json:"userId"`
	TravelID string `json:"travelId"`
}

// BookmarkItem is a bookmarked travel with its aggregates for list responses.
type BookmarkItem struct {
	ID          primitive.ObjectID `json:"id"`
	Thumbnail   string             `json:"thumbnail"`
	TravelTitle string             `json:"travelTitle"`
	Tag         []string           `json:"tag"`
	Bookmark    bool               `json:"bookmark"`
	CreatedBy   CreatedBy          `json:"createdBy"`
	Price       int                `json:"price"`
	Review      ReviewAggregate    `json:"review"`
	CreatedAt   time.Time          `json:"createdAt"`
	BookmarkAt  time.Time          `json:"bookmarkAt"`
}
