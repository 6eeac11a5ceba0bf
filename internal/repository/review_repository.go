package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travely-api/internal/domain"
)

// MongoReviewRepository implements the ReviewRepository interface
type MongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new MongoDB review repository
func NewMongoReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection(CollReviews)

	ctx := context.Background()

	// One live review per (user, travel) pair. The partial filter restricts
	// the constraint to non-deleted reviews so a user may review again after
	// deleting theirs.
	pairIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "travelId", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isDeleted": false}),
	}
	travelIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "travelId", Value: 1},
			{Key: "createdDate", Value: -1},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{pairIndex, travelIndex})

	return &MongoReviewRepository{collection: collection}
}

// Create inserts a review. A duplicate-key error means the pair already has
// a live review.
func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	now := time.Now()
	if review.CreatedDate.IsZero() {
		review.CreatedDate = now
	}
	review.UpdatedAt = now
	if review.ReviewImg == nil {
		review.ReviewImg = []string{}
	}

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a non-deleted review by id
func (r *MongoReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	filter := bson.M{"_id": id, "isDeleted": false}

	var review domain.Review
	err := r.collection.FindOne(ctx, filter).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

// Find lists non-deleted reviews matching the filter, newest first
func (r *MongoReviewRepository) Find(ctx context.Context, filter domain.ReviewListFilter, page, size int64) ([]domain.Review, int64, error) {
	query := bson.M{"isDeleted": false}
	if filter.UserID != nil {
		query["userId"] = *filter.UserID
	}
	if filter.TravelID != nil {
		query["travelId"] = *filter.TravelID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdDate": -1}).
		SetSkip((page - 1) * size).
		SetLimit(size)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

// FindByTravelID lists non-deleted reviews for a travel
func (r *MongoReviewRepository) FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Review, error) {
	filter := bson.M{"travelId": travelID, "isDeleted": false}
	opts := options.Find().SetSort(bson.M{"createdDate": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by travel: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// CountByTravelID counts non-deleted reviews for a travel
func (r *MongoReviewRepository) CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"travelId": travelID, "isDeleted": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// SoftDelete marks a review deleted; deleted reviews drop out of aggregates
// and out of the unique pair constraint.
func (r *MongoReviewRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": id, "isDeleted": false}
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to soft-delete review: %w", err)
	}
	return result.ModifiedCount == 1, nil
}
