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

// MongoCommentRepository implements the CommentRepository interface
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoDB comment repository
func NewMongoCommentRepository(db *mongo.Database) CommentRepository {
	collection := db.Collection(CollComments)

	ctx := context.Background()

	guideIndex := mongo.IndexModel{
		Keys: bson.M{"travelId": 1},
	}

	_, _ = collection.Indexes().CreateOne(ctx, guideIndex)

	return &MongoCommentRepository{collection: collection}
}

// Create inserts a new comment on a guide posting
func (r *MongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindOwned finds a non-deleted comment owned by the given user
func (r *MongoCommentRepository) FindOwned(ctx context.Context, commentID, userID primitive.ObjectID) (*domain.Comment, error) {
	filter := bson.M{"_id": commentID, "userId": userID, "isDeleted": false}

	var comment domain.Comment
	err := r.collection.FindOne(ctx, filter).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

// Update replaces the text of a comment owned by the given user
func (r *MongoCommentRepository) Update(ctx context.Context, commentID, userID primitive.ObjectID, text string) (*domain.Comment, error) {
	filter := bson.M{"_id": commentID, "userId": userID, "isDeleted": false}
	update := bson.M{"$set": bson.M{"comment": text, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment domain.Comment
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&comment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return &comment, nil
}

// SoftDelete marks a comment owned by the given user as deleted
func (r *MongoCommentRepository) SoftDelete(ctx context.Context, commentID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": commentID, "userId": userID, "isDeleted": false}
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.ModifiedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
