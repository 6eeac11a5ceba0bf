package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/domain"
)

// MongoUserRatingRepository implements the UserRatingRepository interface
type MongoUserRatingRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRatingRepository creates a new MongoDB user rating repository
func NewMongoUserRatingRepository(db *mongo.Database) UserRatingRepository {
	collection := db.Collection(CollUserRatings)

	ctx := context.Background()

	toUserIndex := mongo.IndexModel{
		Keys: bson.M{"toUserId": 1},
	}

	_, _ = collection.Indexes().CreateOne(ctx, toUserIndex)

	return &MongoUserRatingRepository{collection: collection}
}

// Create records a rating given by one user to another
func (r *MongoUserRatingRepository) Create(ctx context.Context, rating *domain.UserRating) error {
	rating.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return fmt.Errorf("failed to create user rating: %w", err)
	}
	rating.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ScoresByToUserID returns the scores of all non-deleted ratings received by a user
func (r *MongoUserRatingRepository) ScoresByToUserID(ctx context.Context, toUserID primitive.ObjectID) ([]float64, error) {
	filter := bson.M{"toUserId": toUserID, "isDeleted": false}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find user ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []domain.UserRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode user ratings: %w", err)
	}

	scores := make([]float64, 0, len(ratings))
	for _, rating := range ratings {
		scores = append(scores, rating.UserScore)
	}
	return scores, nil
}
