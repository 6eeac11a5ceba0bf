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

// notDeleted scopes every travel query; soft-deleted postings stay invisible.
var notDeleted = bson.M{"isDeleted": false}

// MongoTravelRepository implements the TravelRepository interface
type MongoTravelRepository struct {
	collection *mongo.Collection
}

// NewMongoTravelRepository creates a new MongoDB travel repository
func NewMongoTravelRepository(db *mongo.Database) TravelRepository {
	collection := db.Collection(CollTravels)

	ctx := context.Background()

	ownerIndex := mongo.IndexModel{
		Keys: bson.M{"userId": 1},
	}
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	_, _ = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{ownerIndex, createdAtIndex})

	return &MongoTravelRepository{collection: collection}
}

// Create inserts a travel posting inside a session transaction
func (r *MongoTravelRepository) Create(ctx mongo.SessionContext, travel *domain.Travel) error {
	now := time.Now()
	travel.CreatedAt = now
	travel.UpdatedAt = now
	travel.TravelActive = true
	if travel.TeamID == nil {
		travel.TeamID = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, travel)
	if err != nil {
		return fmt.Errorf("failed to create travel: %w", err)
	}
	travel.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a non-deleted travel by id
func (r *MongoTravelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Travel, error) {
	filter := bson.M{"_id": id, "isDeleted": false}

	var travel domain.Travel
	err := r.collection.FindOne(ctx, filter).Decode(&travel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find travel: %w", err)
	}
	return &travel, nil
}

// FindAll lists non-deleted travels, newest first
func (r *MongoTravelRepository) FindAll(ctx context.Context) ([]domain.Travel, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, notDeleted, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list travels: %w", err)
	}
	defer cursor.Close(ctx)

	var travels []domain.Travel
	if err := cursor.All(ctx, &travels); err != nil {
		return nil, fmt.Errorf("failed to decode travels: %w", err)
	}
	return travels, nil
}

// FindByUserID lists non-deleted travels created by the user
func (r *MongoTravelRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Travel, error) {
	filter := bson.M{"userId": userID, "isDeleted": false}
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list travels by user: %w", err)
	}
	defer cursor.Close(ctx)

	var travels []domain.Travel
	if err := cursor.All(ctx, &travels); err != nil {
		return nil, fmt.Errorf("failed to decode travels: %w", err)
	}
	return travels, nil
}

// FindByIDs lists non-deleted travels matching the given ids
func (r *MongoTravelRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Travel, error) {
	if len(ids) == 0 {
		return []domain.Travel{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}, "isDeleted": false}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list travels by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var travels []domain.Travel
	if err := cursor.All(ctx, &travels); err != nil {
		return nil, fmt.Errorf("failed to decode travels: %w", err)
	}
	return travels, nil
}

// PushTeam appends a team reference inside the creation transaction
func (r *MongoTravelRepository) PushTeam(ctx mongo.SessionContext, travelID, teamID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"teamId": teamID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": travelID}, update)
	if err != nil {
		return fmt.Errorf("failed to push team onto travel: %w", err)
	}
	return nil
}

// SetActive toggles the travelActive flag
func (r *MongoTravelRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*domain.Travel, error) {
	update := bson.M{"$set": bson.M{"travelActive": active, "updatedAt": time.Now()}}

	var travel domain.Travel
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "isDeleted": false},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&travel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update travel active flag: %w", err)
	}
	return &travel, nil
}

// SoftDelete marks the travel deleted. The approved-applicant guard runs at
// the service layer before this is called.
func (r *MongoTravelRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete travel: %w", err)
	}
	return nil
}
