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

// MongoUserRepository implements the UserRepository interface
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection(CollUsers)

	ctx := context.Background()

	// Login upserts on these two fields; both must be unique.
	emailIndex := mongo.IndexModel{
		Keys:    bson.M{"userEmail": 1},
		Options: options.Index().SetUnique(true),
	}
	socialNameIndex := mongo.IndexModel{
		Keys:    bson.M{"socialName": 1},
		Options: options.Index().SetUnique(true),
	}

	_, _ = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{emailIndex, socialNameIndex})

	return &MongoUserRepository{collection: collection}
}

// Create inserts a new user
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.MyCreatedTravel == nil {
		user.MyCreatedTravel = []primitive.ObjectID{}
	}
	if user.MyPassedTravel == nil {
		user.MyPassedTravel = []primitive.ObjectID{}
	}
	if user.MyReviews == nil {
		user.MyReviews = []primitive.ObjectID{}
	}
	if user.MyBookmark == nil {
		user.MyBookmark = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a user by id
func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindBySocialNameOrEmail finds a user matching either login identifier
func (r *MongoUserRepository) FindBySocialNameOrEmail(ctx context.Context, socialName, email string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"userEmail": email},
		bson.M{"socialName": socialName},
	}}

	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateMBTI sets a user's MBTI type
func (r *MongoUserRepository) UpdateMBTI(ctx context.Context, id primitive.ObjectID, mbti string) (*domain.User, error) {
	return r.updateFields(ctx, id, bson.M{"mbti": mbti})
}

// UpdatePhoneNumber sets a user's phone number
func (r *MongoUserRepository) UpdatePhoneNumber(ctx context.Context, id primitive.ObjectID, phone string) (*domain.User, error) {
	return r.updateFields(ctx, id, bson.M{"phoneNumber": phone})
}

// UpdateBankAccount sets a user's payout account
func (r *MongoUserRepository) UpdateBankAccount(ctx context.Context, id primitive.ObjectID, account domain.BankAccount) (*domain.User, error) {
	return r.updateFields(ctx, id, bson.M{"bankAccount": account})
}

// AddCreatedTravel records a travel the user created
func (r *MongoUserRepository) AddCreatedTravel(ctx context.Context, id, travelID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"myCreatedTravel": travelID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to record created travel: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) updateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.User, error) {
	fields["updatedAt"] = time.Now()

	var user domain.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}
