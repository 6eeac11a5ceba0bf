package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TravelGuide is a guide-seeking posting. It parallels Travel but lives in
// its own collection.
type TravelGuide struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"travelId"`
	UserID        primitive.ObjectID   `bson:"userId" json:"userId"`
	Thumbnail     string               `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	TravelTitle   string               `bson:"travelTitle" json:"travelTitle"`
	TravelContent string               `bson:"travelContent" json:"travelContent"`
	TeamID        []primitive.ObjectID `bson:"teamId" json:"teamId"`
	IsDeleted     bool                 `bson:"isDeleted" json:"-"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CreateTravelGuideRequest creates a guide posting with its first team.
// Thumbnail is optional for guide postings.
type CreateTravelGuideRequest struct {
	UserID        string              `json:"userId"`
	Thumbnail     string              `json:"thumbnail,omitempty"`
	TravelTitle   string              `json:"travelTitle"`
	TravelContent string              `json:"travelContent"`
	Team          []CreateTeamRequest `json:"team"`
}

// TravelGuideItem is a guide posting with the requesting user's bookmark state.
type TravelGuideItem struct {
	TravelGuide
	Bookmark bool `json:"bookmark"`
}

// Comment belongs to one user and one guide posting. Comments are
// soft-deleted, never removed.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"commentId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	TravelID  primitive.ObjectID `bson:"travelId" json:"travelId"`
	Comment   string             `bson:"comment" json:"comment"`
	IsDeleted bool               `bson:"isDeleted" json:"isDeleted"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateCommentRequest adds a comment to a guide posting.
type CreateCommentRequest struct {
	UserID   string `json:"userId"`
	TravelID string `json:"travelId"`
	Comment  string `json:"comment"`
}

// UpdateCommentRequest edits a comment owned by the user.
type UpdateCommentRequest struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId"`
	Comment   string `json:"comment"`
}

// DeleteCommentRequest soft-deletes a comment owned by the user.
type DeleteCommentRequest struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId"`
}
