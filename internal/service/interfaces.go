package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"travely-api/internal/domain"
)

// AuthService defines the interface for token operations
type AuthService interface {
	// IssueToken signs a token for the given user identity
	IssueToken(userID, userEmail string) (string, error)

	// ValidateToken validates a bearer token and returns its claims
	ValidateToken(token string) (*domain.AuthClaims, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// Login upserts a user by social name or email and issues a token
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	// UpdateMBTI sets a user's MBTI type
	UpdateMBTI(ctx context.Context, req *domain.UpdateMBTIRequest) (*domain.User, error)

	// UpdatePhoneNumber sets a user's phone number
	UpdatePhoneNumber(ctx context.Context, req *domain.UpdatePhoneRequest) (*domain.User, error)

	// UpdateBankAccount sets a user's payout account
	UpdateBankAccount(ctx context.Context, req *domain.UpdateBankAccountRequest) (*domain.User, error)

	// GuideRating returns the user's guide rating average
	GuideRating(ctx context.Context, userID primitive.ObjectID) (float64, error)
}

// TeamService defines the interface for applicant lifecycle operations
type TeamService interface {
	// JoinTeam applies a user to a team with the waiting status
	JoinTeam(ctx context.Context, req *domain.JoinTeamRequest) error

	// UpdateAppliedUserStatus moves a waiting applicant to approved or rejected
	UpdateAppliedUserStatus(ctx context.Context, req *domain.UpdateAppliedStatusRequest) error
}

// TravelService defines the interface for trip posting operations
type TravelService interface {
	// CreateTravel creates a posting and its first team transactionally
	CreateTravel(ctx context.Context, req *domain.CreateTravelRequest) (*domain.Travel, error)

	// ListTravels pages active postings with aggregates and bookmark state
	ListTravels(ctx context.Context, userID string, page, size int64) (*domain.TravelListPage, error)

	// TravelDetail returns the full detail view of a posting
	TravelDetail(ctx context.Context, travelID string) (*domain.TravelDetail, error)

	// MyTravels lists postings whose teams the user has applied to
	MyTravels(ctx context.Context, userID string) ([]domain.TravelSummary, error)

	// MyCreatedTravels lists the user's own postings with management counts
	MyCreatedTravels(ctx context.Context, userID string) ([]domain.MyCreatedTravel, error)

	// UpdateActive toggles a posting's recruiting flag
	UpdateActive(ctx context.Context, travelID string, active bool) (*domain.Travel, error)

	// DeleteTravel soft-deletes a posting unless it has an approved applicant
	DeleteTravel(ctx context.Context, travelID string) error

	// ManageMyTravel pages a posting's applicants in management order
	ManageMyTravel(ctx context.Context, travelID string, page, size int64) (*domain.ManagedApplicants, error)

	// ManageMyTravelTeams lists a posting's teams with approved members
	ManageMyTravelTeams(ctx context.Context, travelID string) (*domain.ManagedTeams, error)
}

// TravelGuideService defines the interface for guide posting operations
type TravelGuideService interface {
	// CreateTravelGuide creates a guide posting and its first team transactionally
	CreateTravelGuide(ctx context.Context, req *domain.CreateTravelGuideRequest) (*domain.TravelGuide, error)

	// ListTravelGuides pages guide postings with the user's bookmark state
	ListTravelGuides(ctx context.Context, userID string, page, size int64) (*domain.TravelGuidePage, error)

	// List returns all guide postings, newest first
	List(ctx context.Context) ([]domain.TravelGuide, error)
}

// ReviewService defines the interface for review operations
type ReviewService interface {
	// CreateReview creates a review and optionally a guide rating
	CreateReview(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error)

	// ListReviews pages reviews filtered by author and travel
	ListReviews(ctx context.Context, userID, travelID string, page, size int64) (*domain.ReviewPage, error)

	// DeleteReview soft-deletes a review
	DeleteReview(ctx context.Context, reviewID string) error
}

// BookmarkService defines the interface for bookmark operations
type BookmarkService interface {
	// AddBookmark bookmarks a travel for a user
	AddBookmark(ctx context.Context, req *domain.BookmarkRequest) error

	// RemoveBookmark removes a user's bookmark of a travel
	RemoveBookmark(ctx context.Context, req *domain.BookmarkRequest) error

	// ListUserBookmarks lists the user's bookmarked travels, newest bookmark first
	ListUserBookmarks(ctx context.Context, userID string) ([]domain.BookmarkItem, error)

	// IsBookmarked reports whether the user has bookmarked the travel
	IsBookmarked(ctx context.Context, userID, travelID string) (bool, error)

	// BookmarkCount returns the number of bookmarks on a travel
	BookmarkCount(ctx context.Context, travelID string) (int64, error)
}

// CommentService defines the interface for guide post comments
type CommentService interface {
	// CreateComment adds a comment to a guide posting
	CreateComment(ctx context.Context, req *domain.CreateCommentRequest) (*domain.Comment, error)

	// UpdateComment edits a comment owned by the requester
	UpdateComment(ctx context.Context, req *domain.UpdateCommentRequest) (*domain.Comment, error)

	// DeleteComment soft-deletes a comment owned by the requester
	DeleteComment(ctx context.Context, req *domain.DeleteCommentRequest) error
}

// Services aggregates all service interfaces
type Services struct {
	Auth        AuthService
	User        UserService
	Team        TeamService
	Travel      TravelService
	TravelGuide TravelGuideService
	Review      ReviewService
	Bookmark    BookmarkService
	Comment     CommentService
}
