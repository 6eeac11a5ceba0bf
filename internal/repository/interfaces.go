package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/domain"
)

// Repositories return (nil, nil) for lookups that match nothing; callers map
// that to a not-found error at the service layer.

// UserRepository provides access to the users collection
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindBySocialNameOrEmail(ctx context.Context, socialName, email string) (*domain.User, error)
	UpdateMBTI(ctx context.Context, id primitive.ObjectID, mbti string) (*domain.User, error)
	UpdatePhoneNumber(ctx context.Context, id primitive.ObjectID, phone string) (*domain.User, error)
	UpdateBankAccount(ctx context.Context, id primitive.ObjectID, account domain.BankAccount) (*domain.User, error)
	AddCreatedTravel(ctx context.Context, id, travelID primitive.ObjectID) error
}

// TravelRepository provides access to the travels collection
type TravelRepository interface {
	Create(ctx mongo.SessionContext, travel *domain.Travel) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Travel, error)
	FindAll(ctx context.Context) ([]domain.Travel, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Travel, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Travel, error)
	PushTeam(ctx mongo.SessionContext, travelID, teamID primitive.ObjectID) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*domain.Travel, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// TravelGuideRepository provides access to the travel_guides collection
type TravelGuideRepository interface {
	Create(ctx mongo.SessionContext, guide *domain.TravelGuide) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.TravelGuide, error)
	FindAll(ctx context.Context) ([]domain.TravelGuide, error)
	PushTeam(ctx mongo.SessionContext, guideID, teamID primitive.ObjectID) error
}

// TeamRepository provides access to the teams collection
type TeamRepository interface {
	Create(ctx mongo.SessionContext, team *domain.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error)
	FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Team, error)
	FindByTravelAndTeamID(ctx context.Context, travelID, teamID primitive.ObjectID) (*domain.Team, error)
	FindByAppliedUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error)
	HasApprovedApplicant(ctx context.Context, travelID primitive.ObjectID) (bool, error)
	// AddApplicant appends a waiting entry unless the user already has one.
	// The filtered update makes the duplicate check atomic; added is false
	// when the entry already existed.
	AddApplicant(ctx context.Context, teamID primitive.ObjectID, applicant domain.AppliedUser) (added bool, err error)
	// UpdateApplicantStatus transitions a waiting entry to a terminal state.
	// updated is false when no waiting entry matched.
	UpdateApplicantStatus(ctx context.Context, teamID, userID primitive.ObjectID, status domain.AppliedStatus) (updated bool, err error)
}

// ReviewRepository provides access to the reviews collection
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	Find(ctx context.Context, filter domain.ReviewListFilter, page, size int64) ([]domain.Review, int64, error)
	FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Review, error)
	CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// UserRatingRepository provides access to the user_ratings collection
type UserRatingRepository interface {
	Create(ctx context.Context, rating *domain.UserRating) error
	ScoresByToUserID(ctx context.Context, toUserID primitive.ObjectID) ([]float64, error)
}

// BookmarkRepository provides access to the bookmarks collection
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) error
	Delete(ctx context.Context, userID, travelID primitive.ObjectID) (*domain.Bookmark, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error)
	Exists(ctx context.Context, userID, travelID primitive.ObjectID) (bool, error)
	TravelIDsByUserID(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error)
}

// CommentRepository provides access to the travel_guide_comments collection
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindOwned(ctx context.Context, commentID, userID primitive.ObjectID) (*domain.Comment, error)
	Update(ctx context.Context, commentID, userID primitive.ObjectID, text string) (*domain.Comment, error)
	SoftDelete(ctx context.Context, commentID, userID primitive.ObjectID) error
}
