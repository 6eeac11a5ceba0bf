package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
	"travely-api/pkg/utils"
)

// travelGuideService implements the TravelGuideService interface
type travelGuideService struct {
	client    *mongo.Client
	guides    repository.TravelGuideRepository
	teams     repository.TeamRepository
	users     repository.UserRepository
	bookmarks repository.BookmarkRepository
	images    *utils.ImageValidator
	logger    *logger.Logger
}

// NewTravelGuideService creates a new travel guide service
func NewTravelGuideService(
	client *mongo.Client,
	guides repository.TravelGuideRepository,
	teams repository.TeamRepository,
	users repository.UserRepository,
	bookmarks repository.BookmarkRepository,
	images *utils.ImageValidator,
	log *logger.Logger,
) TravelGuideService {
	return &travelGuideService{
		client:    client,
		guides:    guides,
		teams:     teams,
		users:     users,
		bookmarks: bookmarks,
		images:    images,
		logger:    log,
	}
}

// CreateTravelGuide creates a guide posting and its teams in one transaction.
// Unlike trip postings, the thumbnail is optional.
func (s *travelGuideService) CreateTravelGuide(ctx context.Context, req *domain.CreateTravelGuideRequest) (*domain.TravelGuide, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	if req.TravelTitle == "" || req.TravelContent == "" {
		return nil, errors.NewValidationError("travelTitle and travelContent are required")
	}
	if len(req.Team) == 0 {
		return nil, errors.NewValidationError("at least one team is required")
	}
	for _, t := range req.Team {
		if t.PersonLimit < 1 {
			return nil, errors.NewValidationError("personLimit must be at least 1")
		}
		if !t.TravelEndDate.After(t.TravelStartDate) {
			return nil, errors.NewValidationError("travelEndDate must be after travelStartDate")
		}
	}
	if req.Thumbnail != "" && !s.images.IsValidImageURL(ctx, req.Thumbnail) {
		return nil, errors.NewValidationError("thumbnail is not a reachable image URL")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	guide := &domain.TravelGuide{
		UserID:        userID,
		Thumbnail:     req.Thumbnail,
		TravelTitle:   req.TravelTitle,
		TravelContent: req.TravelContent,
	}

	_, err = repository.WithTransaction(ctx, s.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.guides.Create(sessCtx, guide); err != nil {
			return nil, err
		}
		for _, t := range req.Team {
			team := &domain.Team{
				TravelID:        guide.ID,
				PersonLimit:     t.PersonLimit,
				TravelStartDate: t.TravelStartDate,
				TravelEndDate:   t.TravelEndDate,
			}
			if err := s.teams.Create(sessCtx, team); err != nil {
				return nil, err
			}
			if err := s.guides.PushTeam(sessCtx, guide.ID, team.ID); err != nil {
				return nil, err
			}
			guide.TeamID = append(guide.TeamID, team.ID)
		}
		return nil, nil
	})
	if err != nil {
		return nil, errors.NewInternalError("Failed to create travel guide", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"travel_guide_id": guide.ID.Hex(),
		"user_id":         userID.Hex(),
	}).Info("Travel guide created")
	return guide, nil
}

// ListTravelGuides pages guide postings with the user's bookmark state,
// newest first.
func (s *travelGuideService) ListTravelGuides(ctx context.Context, userID string, page, size int64) (*domain.TravelGuidePage, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	guides, err := s.guides.FindAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list travel guides", err)
	}

	bookmarked, err := s.bookmarks.TravelIDsByUserID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load bookmarks", err)
	}

	pageItems := domain.Paginate(guides, page, size)
	items := make([]domain.TravelGuideItem, 0, len(pageItems))
	for _, g := range pageItems {
		items = append(items, domain.TravelGuideItem{
			TravelGuide: g,
			Bookmark:    bookmarked[g.ID],
		})
	}

	return &domain.TravelGuidePage{
		Travels:  items,
		PageInfo: domain.NewPageInfo(int64(len(guides)), page, size),
	}, nil
}

// List returns all guide postings, newest first.
func (s *travelGuideService) List(ctx context.Context) ([]domain.TravelGuide, error) {
	guides, err := s.guides.FindAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list travel guides", err)
	}
	return guides, nil
}
