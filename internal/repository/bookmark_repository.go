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

// MongoBookmarkRepository implements the BookmarkRepository interface
type MongoBookmarkRepository struct {
	collection *mongo.Collection
}

// NewMongoBookmarkRepository creates a new MongoDB bookmark repository
func NewMongoBookmarkRepository(db *mongo.Database) BookmarkRepository {
	collection := db.Collection(CollBookmarks)

	ctx := context.Background()

	// A pair can be bookmarked at most once; the index closes the
	// check-then-insert race.
	pairIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "travelId", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	userIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "bookmarkAt", Value: -1},
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{pairIndex, userIndex})

	return &MongoBookmarkRepository{collection: collection}
}

// Create inserts a bookmark. A duplicate-key error means the pair is
// already bookmarked.
func (r *MongoBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	if bookmark.BookmarkAt.IsZero() {
		bookmark.BookmarkAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, bookmark)
	if err != nil {
		return err
	}
	bookmark.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Delete removes the pair's bookmark and returns the removed document,
// or (nil, nil) when the pair was not bookmarked
func (r *MongoBookmarkRepository) Delete(ctx context.Context, userID, travelID primitive.ObjectID) (*domain.Bookmark, error) {
	filter := bson.M{"userId": userID, "travelId": travelID}

	var bookmark domain.Bookmark
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&bookmark)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return &bookmark, nil
}

// FindByUserID lists a user's bookmarks, most recent first
func (r *MongoBookmarkRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error) {
	opts := options.Find().SetSort(bson.M{"bookmarkAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	var bookmarks []domain.Bookmark
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Exists reports whether the pair is bookmarked
func (r *MongoBookmarkRepository) Exists(ctx context.Context, userID, travelID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"userId": userID, "travelId": travelID})
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}
	return count > 0, nil
}

// TravelIDsByUserID returns the set of travel ids the user has bookmarked.
// List endpoints use it to mark membership in a single query.
func (r *MongoBookmarkRepository) TravelIDsByUserID(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarked travels: %w", err)
	}
	defer cursor.Close(ctx)

	ids := make(map[primitive.ObjectID]bool)
	for cursor.Next(ctx) {
		var bookmark domain.Bookmark
		if err := cursor.Decode(&bookmark); err != nil {
			return nil, fmt.Errorf("failed to decode bookmark: %w", err)
		}
		ids[bookmark.TravelID] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return ids, nil
}

// CountByTravelID counts bookmarks on a travel
func (r *MongoBookmarkRepository) CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"travelId": travelID})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}
