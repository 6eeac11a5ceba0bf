package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review belongs to one user and one travel. At most one non-deleted review
// may exist per (user, travel) pair; the reviews collection enforces this
// with a partial unique index.
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"reviewId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TravelID    primitive.ObjectID `bson:"travelId" json:"travelId"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	TravelScore float64            `bson:"travelScore" json:"travelScore"`
	ReviewImg   []string           `bson:"reviewImg" json:"reviewImg"`
	IsDeleted   bool               `bson:"isDeleted" json:"-"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewAverage returns the arithmetic mean of the given scores,
// or 0 when there are none.
func ReviewAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

// GuideRatingAverage returns the mean of the given rating scores rounded to
// one decimal place, or 0 when there are none.
func GuideRatingAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return math.Round(total/float64(len(scores))*10) / 10
}

// UserRating is a guide rating given by one user to another.
type UserRating struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"ratingId"`
	FromUserID primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID   primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	UserScore  float64            `bson:"userScore" json:"userScore"`
	IsDeleted  bool               `bson:"isDeleted" json:"-"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateReviewRequest creates a review and, when GuideScore is set,
// a guide rating for the travel owner.
type CreateReviewRequest struct {
	UserID      string   `json:"userId"`
	TravelID    string   `json:"travelId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	TravelScore float64  `json:"travelScore"`
	ReviewImg   []string `json:"reviewImg,omitempty"`
	GuideScore  *float64 `json:"guideScore,omitempty"`
}

// ReviewItem is a review joined with its author summary for list responses.
type ReviewItem struct {
	ReviewID    primitive.ObjectID `json:"reviewId"`
	TravelID    primitive.ObjectID `json:"travelId"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	ImgSrc      []string           `json:"imgSrc"`
	Rating      float64            `json:"rating"`
	CreatedDate time.Time          `json:"createdDate"`
	User        UserSummary        `json:"user"`
}

// ReviewListFilter narrows a review listing by author and travel.
type ReviewListFilter struct {
	UserID   *primitive.ObjectID
	TravelID *primitive.ObjectID
}
