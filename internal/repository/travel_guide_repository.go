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

// MongoTravelGuideRepository implements the TravelGuideRepository interface
type MongoTravelGuideRepository struct {
	collection *mongo.Collection
}

// NewMongoTravelGuideRepository creates a new MongoDB travel guide repository
func NewMongoTravelGuideRepository(db *mongo.Database) TravelGuideRepository {
	collection := db.Collection(CollTravelGuides)

	ctx := context.Background()

	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	_, _ = collection.Indexes().CreateOne(ctx, createdAtIndex)

	return &MongoTravelGuideRepository{collection: collection}
}

// Create inserts a guide posting inside a session transaction
func (r *MongoTravelGuideRepository) Create(ctx mongo.SessionContext, guide *domain.TravelGuide) error {
	now := time.Now()
	guide.CreatedAt = now
	guide.UpdatedAt = now
	if guide.TeamID == nil {
		guide.TeamID = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, guide)
	if err != nil {
		return fmt.Errorf("failed to create travel guide: %w", err)
	}
	guide.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a non-deleted guide posting by id
func (r *MongoTravelGuideRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.TravelGuide, error) {
	filter := bson.M{"_id": id, "isDeleted": false}

	var guide domain.TravelGuide
	err := r.collection.FindOne(ctx, filter).Decode(&guide)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find travel guide: %w", err)
	}
	return &guide, nil
}

// FindAll lists non-deleted guide postings, newest first
func (r *MongoTravelGuideRepository) FindAll(ctx context.Context) ([]domain.TravelGuide, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"isDeleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list travel guides: %w", err)
	}
	defer cursor.Close(ctx)

	var guides []domain.TravelGuide
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, fmt.Errorf("failed to decode travel guides: %w", err)
	}
	return guides, nil
}

// PushTeam appends a team reference inside the creation transaction
func (r *MongoTravelGuideRepository) PushTeam(ctx mongo.SessionContext, guideID, teamID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"teamId": teamID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": guideID}, update)
	if err != nil {
		return fmt.Errorf("failed to push team onto travel guide: %w", err)
	}
	return nil
}
