package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
	"travely-api/pkg/utils"
)

// userService implements the UserService interface
type userService struct {
	users   repository.UserRepository
	ratings repository.UserRatingRepository
	auth    AuthService
	cache   *CacheService
	logger  *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repository.UserRepository,
	ratings repository.UserRatingRepository,
	auth AuthService,
	cache *CacheService,
	log *logger.Logger,
) UserService {
	return &userService{
		users:   users,
		ratings: ratings,
		auth:    auth,
		cache:   cache,
		logger:  log,
	}
}

// Login upserts a user by social name or email. A first login creates the
// user; every login returns the id, the guide rating average and a token.
func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.SocialName == "" || req.UserEmail == "" {
		return nil, errors.NewValidationError("socialName and userEmail are required")
	}
	if !utils.IsValidEmail(req.UserEmail) {
		return nil, errors.NewValidationError("userEmail is not a valid email address")
	}

	user, err := s.users.FindBySocialNameOrEmail(ctx, req.SocialName, req.UserEmail)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}

	if user == nil {
		user = &domain.User{
			SocialName:       req.SocialName,
			UserEmail:        req.UserEmail,
			UserProfileImage: req.UserProfileImage,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if repository.IsDuplicateKeyError(err) {
				// Lost a race with a concurrent first login; the winner's
				// document is the user.
				user, err = s.users.FindBySocialNameOrEmail(ctx, req.SocialName, req.UserEmail)
				if err != nil || user == nil {
					return nil, errors.NewInternalError("Failed to look up user", err)
				}
			} else {
				return nil, errors.NewInternalError("Failed to create user", err)
			}
		} else {
			s.logger.WithField("user_id", user.ID.Hex()).Info("User created on first login")
		}
	}

	rating, err := s.GuideRating(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.IssueToken(user.ID.Hex(), user.UserEmail)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		UserID:    user.ID,
		UserScore: rating,
		Token:     token,
	}, nil
}

// UpdateMBTI sets a user's MBTI type
func (s *userService) UpdateMBTI(ctx context.Context, req *domain.UpdateMBTIRequest) (*domain.User, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	if !utils.IsValidMBTI(req.MBTI) {
		return nil, errors.NewValidationError("mbti must be one of the 16 MBTI types")
	}

	user, err := s.users.UpdateMBTI(ctx, userID, req.MBTI)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update MBTI", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return user, nil
}

// UpdatePhoneNumber sets a user's phone number
func (s *userService) UpdatePhoneNumber(ctx context.Context, req *domain.UpdatePhoneRequest) (*domain.User, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	if !utils.IsValidPhoneNumber(req.PhoneNumber) {
		return nil, errors.NewValidationError("phoneNumber must match NNN-NNNN-NNNN")
	}

	user, err := s.users.UpdatePhoneNumber(ctx, userID, req.PhoneNumber)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update phone number", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return user, nil
}

// UpdateBankAccount sets a user's payout account
func (s *userService) UpdateBankAccount(ctx context.Context, req *domain.UpdateBankAccountRequest) (*domain.User, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	if req.BankCode == "" || req.AccountNumber == "" {
		return nil, errors.NewValidationError("bankCode and accountNumber are required")
	}

	account := domain.BankAccount{
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
	}
	user, err := s.users.UpdateBankAccount(ctx, userID, account)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update bank account", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}
	return user, nil
}

// GuideRating returns the cached guide rating average for a user
func (s *userService) GuideRating(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	rating, err := s.cache.GuideRating(ctx, userID.Hex(), func(ctx context.Context) (float64, error) {
		scores, err := s.ratings.ScoresByToUserID(ctx, userID)
		if err != nil {
			return 0, err
		}
		return domain.GuideRatingAverage(scores), nil
	})
	if err != nil {
		return 0, errors.NewInternalError("Failed to derive guide rating", err)
	}
	return rating, nil
}

// parseObjectID validates a hex document id from a request payload.
func parseObjectID(id, field string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errors.NewValidationError(field + " is not a valid id")
	}
	return oid, nil
}
