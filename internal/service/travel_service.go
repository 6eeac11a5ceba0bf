package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
	"travely-api/pkg/utils"
)

// travelService implements the TravelService interface
type travelService struct {
	client    *mongo.Client
	travels   repository.TravelRepository
	teams     repository.TeamRepository
	users     repository.UserRepository
	reviews   repository.ReviewRepository
	bookmarks repository.BookmarkRepository
	ratings   repository.UserRatingRepository
	cache     *CacheService
	images    *utils.ImageValidator
	logger    *logger.Logger
}

// NewTravelService creates a new travel service
func NewTravelService(
	client *mongo.Client,
	travels repository.TravelRepository,
	teams repository.TeamRepository,
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	bookmarks repository.BookmarkRepository,
	ratings repository.UserRatingRepository,
	cache *CacheService,
	images *utils.ImageValidator,
	log *logger.Logger,
) TravelService {
	return &travelService{
		client:    client,
		travels:   travels,
		teams:     teams,
		users:     users,
		reviews:   reviews,
		bookmarks: bookmarks,
		ratings:   ratings,
		cache:     cache,
		images:    images,
		logger:    log,
	}
}

// CreateTravel creates a posting and its teams in one transaction, so a
// posting never exists without its first team.
func (s *travelService) CreateTravel(ctx context.Context, req *domain.CreateTravelRequest) (*domain.Travel, error) {
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
	if req.TravelPrice < 0 {
		return nil, errors.NewValidationError("travelPrice must not be negative")
	}
	if !domain.ValidTagLabels(req.Tag) {
		return nil, errors.NewValidationError("tag contains an unknown label")
	}
	if !s.images.IsValidImageURL(ctx, req.Thumbnail) {
		return nil, errors.NewValidationError("thumbnail is not a reachable image URL")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	travel := &domain.Travel{
		UserID:        userID,
		Thumbnail:     req.Thumbnail,
		TravelTitle:   req.TravelTitle,
		TravelContent: req.TravelContent,
		Tag:           domain.TagPaths(req.Tag),
		TravelCourse:  req.TravelCourse,
		IncludedItems: req.IncludedItems,
		ExcludedItems: req.ExcludedItems,
		MeetingTime:   req.MeetingTime,
		MeetingPlace:  req.MeetingPlace,
		TravelPrice:   req.TravelPrice,
		TravelFAQ:     req.TravelFAQ,
	}

	_, err = repository.WithTransaction(ctx, s.client, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.travels.Create(sessCtx, travel); err != nil {
			return nil, err
		}
		for _, t := range req.Team {
			team := &domain.Team{
				TravelID:        travel.ID,
				PersonLimit:     t.PersonLimit,
				TravelStartDate: t.TravelStartDate,
				TravelEndDate:   t.TravelEndDate,
			}
			if err := s.teams.Create(sessCtx, team); err != nil {
				return nil, err
			}
			if err := s.travels.PushTeam(sessCtx, travel.ID, team.ID); err != nil {
				return nil, err
			}
			travel.TeamID = append(travel.TeamID, team.ID)
		}
		return nil, nil
	})
	if err != nil {
		return nil, errors.NewInternalError("Failed to create travel", err)
	}

	if err := s.users.AddCreatedTravel(ctx, userID, travel.ID); err != nil {
		s.logger.WithError(err).WithField("travel_id", travel.ID.Hex()).
			Error("Failed to record created travel on user")
	}

	s.logger.WithFields(map[string]interface{}{
		"travel_id": travel.ID.Hex(),
		"user_id":   userID.Hex(),
		"teams":     len(travel.TeamID),
	}).Info("Travel created")
	return travel, nil
}

// ListTravels pages active postings, each with review aggregates, owner
// summary, tag labels and the requesting user's bookmark state.
func (s *travelService) ListTravels(ctx context.Context, userID string, page, size int64) (*domain.TravelListPage, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	all, err := s.travels.FindAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("Failed to list travels", err)
	}
	active := make([]domain.Travel, 0, len(all))
	for _, t := range all {
		if t.TravelActive {
			active = append(active, t)
		}
	}

	bookmarked, err := s.bookmarks.TravelIDsByUserID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load bookmarks", err)
	}

	pageItems := domain.Paginate(active, page, size)
	owners := make(map[primitive.ObjectID]*domain.User)
	summaries := make([]domain.TravelSummary, 0, len(pageItems))
	for _, t := range pageItems {
		summary, err := s.summarize(ctx, &t, owners, bookmarked[t.ID])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return &domain.TravelListPage{
		Travels:  summaries,
		PageInfo: domain.NewPageInfo(int64(len(active)), page, size),
	}, nil
}

// TravelDetail returns the full detail view of a posting.
func (s *travelService) TravelDetail(ctx context.Context, travelID string) (*domain.TravelDetail, error) {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return nil, err
	}

	travel, err := s.travels.FindByID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return nil, errors.NewNotFoundError("Travel not found")
	}

	owner, err := s.users.FindByID(ctx, travel.UserID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel owner", err)
	}
	if owner == nil {
		return nil, errors.NewNotFoundError("Travel owner not found")
	}

	guideRating, err := s.cache.GuideRating(ctx, owner.ID.Hex(), func(ctx context.Context) (float64, error) {
		scores, err := s.ratings.ScoresByToUserID(ctx, owner.ID)
		if err != nil {
			return 0, err
		}
		return domain.GuideRatingAverage(scores), nil
	})
	if err != nil {
		return nil, errors.NewInternalError("Failed to derive guide rating", err)
	}

	reviews, err := s.reviews.FindByTravelID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load reviews", err)
	}
	authors := make(map[primitive.ObjectID]*domain.User)
	items := make([]domain.ReviewItem, 0, len(reviews))
	scores := make([]float64, 0, len(reviews))
	for _, r := range reviews {
		author, err := s.lookupUser(ctx, r.UserID, authors)
		if err != nil {
			return nil, err
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
		scores = append(scores, r.TravelScore)
	}

	teams, err := s.teams.FindByTravelID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load teams", err)
	}
	overviews := make([]domain.TeamOverview, 0, len(teams))
	for _, team := range teams {
		overview, err := s.teamOverview(ctx, &team, authors)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}

	bookmarkCount, err := s.cache.BookmarkCount(ctx, tid.Hex(), func(ctx context.Context) (int64, error) {
		return s.bookmarks.CountByTravelID(ctx, tid)
	})
	if err != nil {
		return nil, errors.NewInternalError("Failed to count bookmarks", err)
	}

	return &domain.TravelDetail{
		Guide: domain.GuideSummary{
			UserProfileImage: owner.UserProfileImage,
			SocialName:       owner.SocialName,
			UserEmail:        owner.UserEmail,
			GuideTotalRating: guideRating,
		},
		Title:         travel.TravelTitle,
		Content:       travel.TravelContent,
		Price:         travel.TravelPrice,
		Thumbnail:     travel.Thumbnail,
		Tag:           domain.TagLabels(travel.Tag),
		TravelCourse:  travel.TravelCourse,
		IncludedItems: travel.IncludedItems,
		ExcludedItems: travel.ExcludedItems,
		MeetingTime:   travel.MeetingTime,
		MeetingPlace:  travel.MeetingPlace,
		FAQ:           travel.TravelFAQ,
		Reviews:       items,
		Teams:         overviews,
		TotalRating:   domain.ReviewAverage(scores),
		Bookmark:      bookmarkCount,
	}, nil
}

// MyTravels lists postings whose teams carry an application from the user.
func (s *travelService) MyTravels(ctx context.Context, userID string) ([]domain.TravelSummary, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	teams, err := s.teams.FindByAppliedUser(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load applied teams", err)
	}

	seen := make(map[primitive.ObjectID]bool)
	travelIDs := make([]primitive.ObjectID, 0, len(teams))
	for _, t := range teams {
		if !seen[t.TravelID] {
			seen[t.TravelID] = true
			travelIDs = append(travelIDs, t.TravelID)
		}
	}
	if len(travelIDs) == 0 {
		return []domain.TravelSummary{}, nil
	}

	travels, err := s.travels.FindByIDs(ctx, travelIDs)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load travels", err)
	}

	bookmarked, err := s.bookmarks.TravelIDsByUserID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load bookmarks", err)
	}

	owners := make(map[primitive.ObjectID]*domain.User)
	summaries := make([]domain.TravelSummary, 0, len(travels))
	for _, t := range travels {
		summary, err := s.summarize(ctx, &t, owners, bookmarked[t.ID])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// MyCreatedTravels lists the user's own postings with review aggregates and
// the number of applicants still waiting for a decision.
func (s *travelService) MyCreatedTravels(ctx context.Context, userID string) ([]domain.MyCreatedTravel, error) {
	uid, err := parseObjectID(userID, "userId")
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	travels, err := s.travels.FindByUserID(ctx, uid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load created travels", err)
	}

	rows := make([]domain.MyCreatedTravel, 0, len(travels))
	for _, t := range travels {
		agg, err := s.reviewAggregate(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		teams, err := s.teams.FindByTravelID(ctx, t.ID)
		if err != nil {
			return nil, errors.NewInternalError("Failed to load teams", err)
		}
		waiting := 0
		for _, team := range teams {
			waiting += domain.CountByStatus(team.AppliedUsers, domain.StatusWaiting)
		}

		rows = append(rows, domain.MyCreatedTravel{
			TravelID:            t.ID,
			TravelTitle:         t.TravelTitle,
			TravelPrice:         t.TravelPrice,
			TravelReviewCount:   agg.ReviewCnt,
			TravelActive:        t.TravelActive,
			UpdatedAt:           t.UpdatedAt,
			ReviewAverage:       agg.TravelScore,
			ApproveWaitingCount: waiting,
		})
	}
	return rows, nil
}

// UpdateActive toggles whether a posting is recruiting.
func (s *travelService) UpdateActive(ctx context.Context, travelID string, active bool) (*domain.Travel, error) {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return nil, err
	}

	travel, err := s.travels.SetActive(ctx, tid, active)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update travel", err)
	}
	if travel == nil {
		return nil, errors.NewNotFoundError("Travel not found")
	}
	return travel, nil
}

// DeleteTravel soft-deletes a posting. Refused while any of its teams has an
// approved applicant.
func (s *travelService) DeleteTravel(ctx context.Context, travelID string) error {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return err
	}

	travel, err := s.travels.FindByID(ctx, tid)
	if err != nil {
		return errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return errors.NewNotFoundError("Travel not found")
	}

	approved, err := s.teams.HasApprovedApplicant(ctx, tid)
	if err != nil {
		return errors.NewInternalError("Failed to check applicants", err)
	}
	if approved {
		return errors.NewConflictError("Travel has an approved applicant and cannot be deleted")
	}

	if err := s.travels.SoftDelete(ctx, tid); err != nil {
		return errors.NewInternalError("Failed to delete travel", err)
	}

	s.logger.WithField("travel_id", tid.Hex()).Info("Travel deleted")
	return nil
}

// ManageMyTravel pages a posting's applicants across all of its teams,
// ordered waiting, approved, rejected, earliest application first.
func (s *travelService) ManageMyTravel(ctx context.Context, travelID string, page, size int64) (*domain.ManagedApplicants, error) {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return nil, err
	}

	travel, err := s.travels.FindByID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return nil, errors.NewNotFoundError("Travel not found")
	}

	teams, err := s.teams.FindByTravelID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load teams", err)
	}

	var applicants []domain.AppliedUser
	for _, team := range teams {
		applicants = append(applicants, team.AppliedUsers...)
	}
	sorted := domain.SortAppliedUsers(applicants)
	pageItems := domain.Paginate(sorted, page, size)

	users := make(map[primitive.ObjectID]*domain.User)
	details := make([]domain.AppliedUserDetail, 0, len(pageItems))
	for _, a := range pageItems {
		user, err := s.lookupUser(ctx, a.UserID, users)
		if err != nil {
			return nil, err
		}
		detail := domain.AppliedUserDetail{
			AppliedAt: a.AppliedAt,
			Status:    a.Status,
		}
		if user != nil {
			detail.UserSummary = user.Summary()
		} else {
			detail.UserID = a.UserID
		}
		details = append(details, detail)
	}

	return &domain.ManagedApplicants{
		TravelID:    tid,
		TravelTitle: travel.TravelTitle,
		Applicants:  details,
		PageInfo:    domain.NewPageInfo(int64(len(sorted)), page, size),
	}, nil
}

// ManageMyTravelTeams lists a posting's teams with their approved members.
func (s *travelService) ManageMyTravelTeams(ctx context.Context, travelID string) (*domain.ManagedTeams, error) {
	tid, err := parseObjectID(travelID, "travelId")
	if err != nil {
		return nil, err
	}

	travel, err := s.travels.FindByID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel", err)
	}
	if travel == nil {
		return nil, errors.NewNotFoundError("Travel not found")
	}

	teams, err := s.teams.FindByTravelID(ctx, tid)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load teams", err)
	}

	users := make(map[primitive.ObjectID]*domain.User)
	overviews := make([]domain.TeamOverview, 0, len(teams))
	for _, team := range teams {
		overview, err := s.teamOverview(ctx, &team, users)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, overview)
	}

	return &domain.ManagedTeams{
		TravelID:    tid,
		TravelTitle: travel.TravelTitle,
		Teams:       overviews,
	}, nil
}

// summarize shapes a travel for list responses, reusing owner lookups across
// items on the same page.
func (s *travelService) summarize(ctx context.Context, t *domain.Travel, owners map[primitive.ObjectID]*domain.User, bookmarked bool) (domain.TravelSummary, error) {
	agg, err := s.reviewAggregate(ctx, t.ID)
	if err != nil {
		return domain.TravelSummary{}, err
	}

	owner, err := s.lookupUser(ctx, t.UserID, owners)
	if err != nil {
		return domain.TravelSummary{}, err
	}
	createdBy := domain.CreatedBy{UserID: t.UserID}
	if owner != nil {
		createdBy.UserName = owner.DisplayName()
	}

	return domain.TravelSummary{
		TravelID:    t.ID,
		TravelTitle: t.TravelTitle,
		Price:       t.TravelPrice,
		Thumbnail:   t.Thumbnail,
		Review:      agg,
		CreatedBy:   createdBy,
		Tags:        domain.TagLabels(t.Tag),
		Bookmark:    bookmarked,
		CreatedAt:   t.CreatedAt,
	}, nil
}

// reviewAggregate returns the cached review average and count for a travel.
func (s *travelService) reviewAggregate(ctx context.Context, travelID primitive.ObjectID) (domain.ReviewAggregate, error) {
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

// teamOverview shapes a team with its approved members joined to profiles.
func (s *travelService) teamOverview(ctx context.Context, team *domain.Team, users map[primitive.ObjectID]*domain.User) (domain.TeamOverview, error) {
	approved := make([]domain.AppliedUserDetail, 0)
	for _, a := range team.AppliedUsers {
		if a.Status != domain.StatusApproved {
			continue
		}
		user, err := s.lookupUser(ctx, a.UserID, users)
		if err != nil {
			return domain.TeamOverview{}, err
		}
		detail := domain.AppliedUserDetail{
			AppliedAt: a.AppliedAt,
			Status:    a.Status,
		}
		if user != nil {
			detail.UserSummary = user.Summary()
		} else {
			detail.UserID = a.UserID
		}
		approved = append(approved, detail)
	}

	return domain.TeamOverview{
		TeamID:          team.ID,
		TravelStartDate: team.TravelStartDate,
		TravelEndDate:   team.TravelEndDate,
		PersonLimit:     team.PersonLimit,
		ApprovedUsers:   approved,
	}, nil
}

// lookupUser memoizes user lookups within a single request.
func (s *travelService) lookupUser(ctx context.Context, id primitive.ObjectID, memo map[primitive.ObjectID]*domain.User) (*domain.User, error) {
	if user, ok := memo[id]; ok {
		return user, nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	memo[id] = user
	return user, nil
}
