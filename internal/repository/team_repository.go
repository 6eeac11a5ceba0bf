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

// MongoTeamRepository implements the TeamRepository interface
type MongoTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoTeamRepository creates a new MongoDB team repository
func NewMongoTeamRepository(db *mongo.Database) TeamRepository {
	collection := db.Collection(CollTeams)

	ctx := context.Background()

	travelIndex := mongo.IndexModel{
		Keys: bson.M{"travelId": 1},
	}
	applicantIndex := mongo.IndexModel{
		Keys: bson.M{"appliedUsers.userId": 1},
	}

	_, _ = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{travelIndex, applicantIndex})

	return &MongoTeamRepository{collection: collection}
}

// Create inserts a team inside a session transaction
func (r *MongoTeamRepository) Create(ctx mongo.SessionContext, team *domain.Team) error {
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now
	if team.AppliedUsers == nil {
		team.AppliedUsers = []domain.AppliedUser{}
	}

	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	team.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a team by id
func (r *MongoTeamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error) {
	var team domain.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return &team, nil
}

// FindByTravelID lists the teams attached to a travel
func (r *MongoTeamRepository) FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Team, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"travelId": travelID})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []domain.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// FindByTravelAndTeamID finds a team scoped to its travel
func (r *MongoTeamRepository) FindByTravelAndTeamID(ctx context.Context, travelID, teamID primitive.ObjectID) (*domain.Team, error) {
	filter := bson.M{"_id": teamID, "travelId": travelID}

	var team domain.Team
	err := r.collection.FindOne(ctx, filter).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return &team, nil
}

// FindByAppliedUser lists teams holding an application from the user
func (r *MongoTeamRepository) FindByAppliedUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error) {
	filter := bson.M{"appliedUsers": bson.M{"$elemMatch": bson.M{"userId": userID}}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by applicant: %w", err)
	}
	defer cursor.Close(ctx)

	var teams []domain.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

// HasApprovedApplicant reports whether any team under the travel has an
// approved entry. Travels with approved applicants cannot be deleted.
func (r *MongoTeamRepository) HasApprovedApplicant(ctx context.Context, travelID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"travelId":            travelID,
		"appliedUsers.status": domain.StatusApproved,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to count approved applicants: %w", err)
	}
	return count > 0, nil
}

// AddApplicant appends a waiting entry. The filter excludes teams that
// already hold an entry for the user, so the duplicate check and the insert
// are a single atomic update with no race window.
func (r *MongoTeamRepository) AddApplicant(ctx context.Context, teamID primitive.ObjectID, applicant domain.AppliedUser) (bool, error) {
	filter := bson.M{
		"_id":                 teamID,
		"appliedUsers.userId": bson.M{"$ne": applicant.UserID},
	}
	update := bson.M{
		"$push": bson.M{"appliedUsers": applicant},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to add applicant: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

// UpdateApplicantStatus moves a waiting entry to approved or rejected.
// Terminal entries never match the array filter, so re-transition attempts
// report updated=false.
func (r *MongoTeamRepository) UpdateApplicantStatus(ctx context.Context, teamID, userID primitive.ObjectID, status domain.AppliedStatus) (bool, error) {
	filter := bson.M{"_id": teamID}
	update := bson.M{
		"$set": bson.M{
			"appliedUsers.$[elem].status": status,
			"updatedAt":                   time.Now(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"elem.userId": userID,
			"elem.status": domain.StatusWaiting,
		}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("failed to update applicant status: %w", err)
	}
	return result.ModifiedCount == 1, nil
}
