package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

// bookmarkService implements the BookmarkService interface
type bookmarkService struct {
	bookmarks repository.BookmarkRepository
	travels   repository.TravelRepository
	users     repository.UserRepository
	reviews   repository.ReviewRepository
	cache     *CacheService
	logger    *logger.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(
	bookmarks repository.BookmarkRepository,
	travels repository.TravelRepository,
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	cache *CacheService,
	log *logger.Logger,
) BookmarkService {
	return &bookmarkService{
		bookmarks: bookmarks,
		travels:   travels,
		users:     users,
		reviews:   reviews,
		cache:     cache,
		logger:    log,
	}
}

// AddBookmark bookmarks a travel for a user. The unique (userId, travelId)
// index turns a concurrent double-add into a conflict, not a duplicate.
func (s *bookmarkService) AddBookmark(ctx context.Context, req *domain.BookmarkRequest) error {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return err
	}
	travelID, err := parseObjectID(req.TravelID, "travelId")
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError("User not found")
	}

	travel, err := s.travels.FindByID(ctx, travelID)
	if err != nil {
		return errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return errors.NewNotFoundError("Travel not found")
	}

	bookmark := &domain.Bookmark{
		UserID:     userID,
		TravelID:   travelID,
		BookmarkAt: time.Now(),
	}
	if err := s.bookmarks.Create(ctx, bookmark); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return errors.NewConflictError("Travel is already bookmarked")
		}
		return errors.NewInternalError("Failed to create bookmark", err)
	}

	s.cache.InvalidateBookmarkCount(travelID.Hex())
	return nil
}

// RemoveBookmark removes a user's bookmark of a travel.
func (s *bookmarkService) RemoveBookmark(ctx context.Context, req *domain.BookmarkRequest) error {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return err
	}
	travelID, err := parseObjectID(req.TravelID, "travelId")
	if err != nil {
		return err
	}

	removed, err := s.bookmarks.Delete(ctx, userID, travelID)
	if err != nil {
		return errors.NewInternalError("Failed to delete bookmark", err)
	}
	if removed == nil {
		return errors.NewNotFoundError("Bookmark not found")
	}

	s.cache.InvalidateBookmarkCount(travelID.Hex())
	return nil
}

// ListUserBookmarks lists the user's bookmarked travels with aggregates,
// newest bookmark first.
func (s *bookmarkService) ListUserBookmarks(ctx context.Context, userID string) ([]domain.BookmarkItem, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.bookmarks.FindByUserID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load bookmarks", err)
	}
	if len(bookmarks) == 0 {
		return []domain.BookmarkItem{}, nil
	}

	travelIDs := make([]primitive.ObjectID, 0, len(bookmarks))
	for _, b := range bookmarks {
		travelIDs = append(travelIDs, b.TravelID)
	}
	travels, err := s.travels.FindByIDs(ctx, travelIDs)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load travels", err)
	}
	byID := make(map[primitive.ObjectID]*domain.Travel, len(travels))
	for i := range travels {
		byID[travels[i].ID] = &travels[i]
	}

	owners := make(map[primitive.ObjectID]*domain.User)
	items := make([]domain.BookmarkItem, 0, len(bookmarks))
	for _, b := range bookmarks {
		travel, ok := byID[b.TravelID]
		if !ok {
			// Bookmark of a since-deleted travel.
			continue
		}

		agg, err := s.reviewAggregate(ctx, travel.ID)
		if err != nil {
			return nil, err
		}

		owner, ok := owners[travel.UserID]
		if !ok {
			owner, err = s.users.FindByID(ctx, travel.UserID)
			if err != nil {
				return nil, errors.NewInternalError("Failed to look up travel owner", err)
			}
			owners[travel.UserID] = owner
		}
		createdBy := domain.CreatedBy{UserID: travel.UserID}
		if owner != nil {
			createdBy.UserName = owner.DisplayName()
		}

		items = append(items, domain.BookmarkItem{
			ID:          travel.ID,
			Thumbnail:   travel.Thumbnail,
			TravelTitle: travel.TravelTitle,
			Tag:         domain.TagLabels(travel.Tag),
			Bookmark:    true,
			CreatedBy:   createdBy,
			Price:       travel.TravelPrice,
			Review:      agg,
			CreatedAt:   travel.CreatedAt,
			BookmarkAt:  b.BookmarkAt,
		})
	}
	return items, nil
}

// IsBookmarked reports whether the user has bookmarked the travel.
func (s *bookmarkService) IsBookmarked(ctx context.Context, userID, travelID string) (bool, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return false, err
	}
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return false, err
	}

	exists, err := s.bookmarks.Exists(ctx, uid, tid)
	if err != nil {
		return false, errors.NewInternalError("Failed to check bookmark", err)
	}
	return exists, nil
}

// BookmarkCount returns the cached number of bookmarks on a travel.
func (s *bookmarkService) BookmarkCount(ctx context.Context, travelID string) (int64, error) {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return 0, err
	}

	count, err := s.cache.BookmarkCount(ctx, tid.Hex(), func(ctx context.Context) (int64, error) {
		return s.bookmarks.CountByTravelID(ctx, tid)
	})
	if err != nil {
		return 0, errors.NewInternalError("Failed to count bookmarks", err)
	}
	return count, nil
}

// reviewAggregate returns the cached review average and count for a travel.
func (s *bookmarkService) reviewAggregate(ctx context.Context, travelID primitive.ObjectID) (domain.ReviewAggregate, error) {
	agg, err := s.cache.TravelReviewAggregate(ctx, travelID.Hex(), func(ctx context.Context) (domain.ReviewAggregate, error) {
		reviews, err := s.reviews.FindByTravelID(ctx, travelID)
		if err != nil {
			return domain.ReviewAggregate{}, err
		}
		scores := make([]float64, 0, len(reviews))
		for _, r := range reviews {
			scores = append(scores, r.TravelScore)
		}
		return domain.ReviewAggregate{
			TravelScore: domain.ReviewAverage(scores),
			ReviewCnt:   int64(len(reviews)),
		}, nil
	})
	if err != nil {
		return domain.ReviewAggregate{}, errors.NewInternalError("Failed to derive review aggregate", err)
	}
	return agg, nil
}
