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

// reviewService implements the ReviewService interface
type reviewService struct {
	reviews repository.ReviewRepository
	travels repository.TravelRepository
	teams   repository.TeamRepository
	users   repository.UserRepository
	ratings repository.UserRatingRepository
	cache   *CacheService
	images  *utils.ImageValidator
	logger  *logger.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviews repository.ReviewRepository,
	travels repository.TravelRepository,
	teams repository.TeamRepository,
	users repository.UserRepository,
	ratings repository.UserRatingRepository,
	cache *CacheService,
	images *utils.ImageValidator,
	log *logger.Logger,
) ReviewService {
	return &reviewService{
		reviews: reviews,
		travels: travels,
		teams:   teams,
		users:   users,
		ratings: ratings,
		cache:   cache,
		images:  images,
		logger:  log,
	}
}

// CreateReview creates a review for a travel the user took part in. Only an
// approved applicant may review; the unique (userId, travelId) index keeps
// the pair to one live review. An optional guideScore rates the travel owner.
func (s *reviewService) CreateReview(ctx context.Context, req *domain.CreateReviewRequest) (*domain.Review, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	travelID, err := parseObjectID(req.TravelID, "travelId")
	if err != nil {
		return nil, err
	}
	if req.Title == "" || req.Content == "" {
		return nil, errors.NewValidationError("title and content are required")
	}
	if !utils.IsValidScore(req.TravelScore) {
		return nil, errors.NewValidationError("travelScore must be between 1 and 5")
	}
	if req.GuideScore != nil && !utils.IsValidScore(*req.GuideScore) {
		return nil, errors.NewValidationError("guideScore must be between 1 and 5")
	}
	for _, img := range req.ReviewImg {
		if !s.images.IsValidImageURL(ctx, img) {
			return nil, errors.NewValidationError("reviewImg contains an unreachable image URL")
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	travel, err := s.travels.FindByID(ctx, travelID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return nil, errors.NewNotFoundError("Travel not found")
	}

	approved, err := s.isApprovedApplicant(ctx, travelID, userID)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, errors.NewValidationError("Only an approved applicant can review this travel")
	}

	review := &domain.Review{
		UserID:      userID,
		TravelID:    travelID,
		Title:       req.Title,
		Content:     req.Content,
		TravelScore: req.TravelScore,
		ReviewImg:   req.ReviewImg,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, errors.NewConflictError("User has already reviewed this travel")
		}
		return nil, errors.NewInternalError("Failed to create review", err)
	}

	if req.GuideScore != nil {
		rating := &domain.UserRating{
			FromUserID: userID,
			ToUserID:   travel.UserID,
			UserScore:  *req.GuideScore,
		}
		if err := s.ratings.Create(ctx, rating); err != nil {
			s.logger.WithError(err).WithField("review_id", review.ID.Hex()).
				Error("Failed to record guide rating")
		}
	}

	s.cache.InvalidateReviewAggregates(travelID.Hex(), travel.UserID.Hex())

	s.logger.WithFields(map[string]interface{}{
		"review_id": review.ID.Hex(),
		"travel_id": travelID.Hex(),
		"user_id":   userID.Hex(),
	}).Info("Review created")
	return review, nil
}

// ListReviews pages non-deleted reviews, newest first, with author summaries.
// Empty userID/travelID filters are allowed; invalid ids are not.
func (s *reviewService) ListReviews(ctx context.Context, userID, travelID string, page, size int64) (*domain.ReviewPage, error) {
	var filter domain.ReviewListFilter
	if userID != "" {
		uid, err := parseObjectID(userID, "userId")
		if err != nil {
			return nil, err
		}
		filter.UserID = &uid
	}
	if travelID != "" {
		tid, err := parseObjectID(travelID, "travelId")
		if err != nil {
			return nil, err
		}
		filter.TravelID = &tid
	}

	reviews, total, err := s.reviews.Find(ctx, filter, page, size)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list reviews", err)
	}

	authors := make(map[primitive.ObjectID]*domain.User)
	items := make([]domain.ReviewItem, 0, len(reviews))
	for _, r := range reviews {
		author, ok := authors[r.UserID]
		if !ok {
			author, err = s.users.FindByID(ctx, r.UserID)
			if err != nil {
				return nil, errors.NewInternalError("Failed to look up review author", err)
			}
			authors[r.UserID] = author
		}
		item := domain.ReviewItem{
			ReviewID:    r.ID,
			TravelID:    r.TravelID,
			Title:       r.Title,
			Content:     r.Content,
			ImgSrc:      r.ReviewImg,
			Rating:      r.TravelScore,
			CreatedDate: r.CreatedDate,
		}
		if author != nil {
			item.User = author.Summary()
		}
		items = append(items, item)
	}

	return &domain.ReviewPage{
		Reviews:  items,
		PageInfo: domain.NewPageInfo(total, page, size),
	}, nil
}

// DeleteReview soft-deletes a review and drops the cached aggregates it fed.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	rid, err := parseObjectID(reviewID, "reviewId")
	if err != nil {
		return err
	}

	review, err := s.reviews.FindByID(ctx, rid)
	if err != nil {
		return errors.NewInternalError("Failed to look up review", err)
	}
	if review == nil {
		return errors.NewNotFoundError("Review not found")
	}

	deleted, err := s.reviews.SoftDelete(ctx, rid)
	if err != nil {
		return errors.NewInternalError("Failed to delete review", err)
	}
	if !deleted {
		return errors.NewNotFoundError("Review not found")
	}

	travel, err := s.travels.FindByID(ctx, review.TravelID)
	if err == nil && travel != nil {
		s.cache.InvalidateReviewAggregates(review.TravelID.Hex(), travel.UserID.Hex())
	} else {
		s.cache.InvalidateReviewAggregates(review.TravelID.Hex(), "")
	}

	s.logger.WithField("review_id", rid.Hex()).Info("Review deleted")
	return nil
}

// isApprovedApplicant reports whether the user is approved on any of the
// travel's teams.
func (s *reviewService) isApprovedApplicant(ctx context.Context, travelID, userID primitive.ObjectID) (bool, error) {
	teams, err := s.teams.FindByTravelID(ctx, travelID)
	if err != nil {
		return false, errors.NewInternalError("Failed to load teams", err)
	}
	for _, team := range teams {
		for _, a := range team.AppliedUsers {
			if a.UserID == userID && a.Status == domain.StatusApproved {
				return true, nil
			}
		}
	}
	return false, nil
}
