package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travely-api/internal/domain"
	"travely-api/pkg/errors"
	"travely-api/pkg/utils"
)

type travelServiceMocks struct {
	travels   *mockTravelRepo
	teams     *mockTeamRepo
	users     *mockUserRepo
	reviews   *mockReviewRepo
	bookmarks *mockBookmarkRepo
	ratings   *mockRatingRepo
}

// newTravelService wires a travel service against mocks and an image host
// that accepts any .jpg path. The mongo client stays nil; tests never reach
// the transactional path.
func newTravelService(t *testing.T, m *travelServiceMocks) TravelService {
	t.Helper()

	imageHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
	}))
	t.Cleanup(imageHost.Close)
	images := utils.NewImageValidatorWithClient(imageHost.Client())

	return NewTravelService(nil, m.travels, m.teams, m.users, m.reviews, m.bookmarks,
		m.ratings, newTestCache(t), images, testLogger(t))
}

func newTravelServiceMocks() *travelServiceMocks {
	return &travelServiceMocks{
		travels:   new(mockTravelRepo),
		teams:     new(mockTeamRepo),
		users:     new(mockUserRepo),
		reviews:   new(mockReviewRepo),
		bookmarks: new(mockBookmarkRepo),
		ratings:   new(mockRatingRepo),
	}
}

func validCreateTravelRequest(userID primitive.ObjectID, thumbnail string) *domain.CreateTravelRequest {
	start := time.Now().Add(24 * time.Hour)
	return &domain.CreateTravelRequest{
		UserID:        userID.Hex(),
		Thumbnail:     thumbnail,
		TravelTitle:   "Busan food tour",
		TravelContent: "Three days of markets and street food.",
		Tag:           []string{"Food Tour"},
		TravelPrice:   150000,
		Team: []domain.CreateTeamRequest{
			{PersonLimit: 4, TravelStartDate: start, TravelEndDate: start.Add(72 * time.Hour)},
		},
	}
}

func TestTravelServiceCreateTravelValidation(t *testing.T) {
	userID := primitive.NewObjectID()
	start := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name   string
		mutate func(req *domain.CreateTravelRequest)
	}{
		{
			name:   "missing title",
			mutate: func(req *domain.CreateTravelRequest) { req.TravelTitle = "" },
		},
		{
			name:   "missing content",
			mutate: func(req *domain.CreateTravelRequest) { req.TravelContent = "" },
		},
		{
			name:   "no teams",
			mutate: func(req *domain.CreateTravelRequest) { req.Team = nil },
		},
		{
			name: "person limit below one",
			mutate: func(req *domain.CreateTravelRequest) {
				req.Team[0].PersonLimit = 0
			},
		},
		{
			name: "end date not after start date",
			mutate: func(req *domain.CreateTravelRequest) {
				req.Team[0].TravelEndDate = start
				req.Team[0].TravelStartDate = start
			},
		},
		{
			name:   "negative price",
			mutate: func(req *domain.CreateTravelRequest) { req.TravelPrice = -1 },
		},
		{
			name:   "unknown tag",
			mutate: func(req *domain.CreateTravelRequest) { req.Tag = []string{"Skydiving"} },
		},
		{
			name:   "thumbnail is not an image URL",
			mutate: func(req *domain.CreateTravelRequest) { req.Thumbnail = "ftp://x/y.jpg" },
		},
		{
			name:   "invalid user id",
			mutate: func(req *domain.CreateTravelRequest) { req.UserID = "nope" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTravelServiceMocks()
			svc := newTravelService(t, m)

			host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/jpeg")
			}))
			defer host.Close()

			req := validCreateTravelRequest(userID, host.URL+"/thumb.jpg")
			tt.mutate(req)

			_, err := svc.CreateTravel(context.Background(), req)
			assertErrorType(t, err, errors.ErrorTypeValidation)
			m.travels.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTravelServiceCreateTravelUnknownUser(t *testing.T) {
	userID := primitive.NewObjectID()
	m := newTravelServiceMocks()
	m.users.On("FindByID", mock.Anything, userID).Return(nil, nil)

	imageHost := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
	}))
	defer imageHost.Close()
	images := utils.NewImageValidatorWithClient(imageHost.Client())

	svc := NewTravelService(nil, m.travels, m.teams, m.users, m.reviews, m.bookmarks,
		m.ratings, newTestCache(t), images, testLogger(t))

	_, err := svc.CreateTravel(context.Background(), validCreateTravelRequest(userID, imageHost.URL+"/thumb.jpg"))
	assertErrorType(t, err, errors.ErrorTypeNotFound)
}

func TestTravelServiceListTravels(t *testing.T) {
	userID := primitive.NewObjectID()
	ownerID := primitive.NewObjectID()
	activeID := primitive.NewObjectID()
	inactiveID := primitive.NewObjectID()

	m := newTravelServiceMocks()
	m.travels.On("FindAll", mock.Anything).Return([]domain.Travel{
		{ID: activeID, UserID: ownerID, TravelTitle: "Seoul nights", TravelActive: true},
		{ID: inactiveID, UserID: ownerID, TravelTitle: "Closed trip", TravelActive: false},
	}, nil)
	m.bookmarks.On("TravelIDsByUserID", mock.Anything, userID).
		Return(map[primitive.ObjectID]bool{activeID: true}, nil)
	m.reviews.On("FindByTravelID", mock.Anything, activeID).Return([]domain.Review{{TravelScore: 4}}, nil)
	m.users.On("FindByID", mock.Anything, ownerID).Return(&domain.User{ID: ownerID, SocialName: "guide-kim"}, nil)

	svc := newTravelService(t, m)
	page, err := svc.ListTravels(context.Background(), userID.Hex(), 1, 10)

	require.NoError(t, err)
	// Inactive postings never appear.
	require.Len(t, page.Travels, 1)
	assert.Equal(t, activeID, page.Travels[0].TravelID)
	assert.True(t, page.Travels[0].Bookmark)
	assert.Equal(t, int64(1), page.PageInfo.TotalElements)
	assert.False(t, page.PageInfo.HasNext)
}

func TestTravelServiceUpdateActive(t *testing.T) {
	travelID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		m := newTravelServiceMocks()
		m.travels.On("SetActive", mock.Anything, travelID, false).
			Return(&domain.Travel{ID: travelID, TravelActive: false}, nil)

		svc := newTravelService(t, m)
		travel, err := svc.UpdateActive(context.Background(), travelID.Hex(), false)

		require.NoError(t, err)
		assert.False(t, travel.TravelActive)
	})

	t.Run("unknown travel", func(t *testing.T) {
		m := newTravelServiceMocks()
		m.travels.On("SetActive", mock.Anything, travelID, true).Return(nil, nil)

		svc := newTravelService(t, m)
		_, err := svc.UpdateActive(context.Background(), travelID.Hex(), true)
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestTravelServiceDeleteTravel(t *testing.T) {
	travelID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		m := newTravelServiceMocks()
		m.travels.On("FindByID", mock.Anything, travelID).Return(&domain.Travel{ID: travelID}, nil)
		m.teams.On("HasApprovedApplicant", mock.Anything, travelID).Return(false, nil)
		m.travels.On("SoftDelete", mock.Anything, travelID).Return(nil)

		svc := newTravelService(t, m)
		assert.NoError(t, svc.DeleteTravel(context.Background(), travelID.Hex()))
		m.travels.AssertExpectations(t)
	})

	t.Run("approved applicant blocks deletion", func(t *testing.T) {
		m := newTravelServiceMocks()
		m.travels.On("FindByID", mock.Anything, travelID).Return(&domain.Travel{ID: travelID}, nil)
		m.teams.On("HasApprovedApplicant", mock.Anything, travelID).Return(true, nil)

		svc := newTravelService(t, m)
		err := svc.DeleteTravel(context.Background(), travelID.Hex())

		assertErrorType(t, err, errors.ErrorTypeConflict)
		m.travels.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("unknown travel", func(t *testing.T) {
		m := newTravelServiceMocks()
		m.travels.On("FindByID", mock.Anything, travelID).Return(nil, nil)

		svc := newTravelService(t, m)
		err := svc.DeleteTravel(context.Background(), travelID.Hex())
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestTravelServiceManageMyTravel(t *testing.T) {
	travelID := primitive.NewObjectID()
	waitingUser := primitive.NewObjectID()
	approvedUser := primitive.NewObjectID()
	base := time.Now()

	m := newTravelServiceMocks()
	m.travels.On("FindByID", mock.Anything, travelID).
		Return(&domain.Travel{ID: travelID, TravelTitle: "Jeju hike"}, nil)
	m.teams.On("FindByTravelID", mock.Anything, travelID).Return([]domain.Team{
		{ID: primitive.NewObjectID(), TravelID: travelID, AppliedUsers: []domain.AppliedUser{
			{UserID: approvedUser, Status: domain.StatusApproved, AppliedAt: base},
		}},
		{ID: primitive.NewObjectID(), TravelID: travelID, AppliedUsers: []domain.AppliedUser{
			{UserID: waitingUser, Status: domain.StatusWaiting, AppliedAt: base.Add(time.Hour)},
		}},
	}, nil)
	m.users.On("FindByID", mock.Anything, waitingUser).
		Return(&domain.User{ID: waitingUser, SocialName: "applicant-a"}, nil)
	m.users.On("FindByID", mock.Anything, approvedUser).Return(nil, nil)

	svc := newTravelService(t, m)
	managed, err := svc.ManageMyTravel(context.Background(), travelID.Hex(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, "Jeju hike", managed.TravelTitle)
	require.Len(t, managed.Applicants, 2)
	// Waiting applicants come before approved ones regardless of when they applied.
	assert.Equal(t, waitingUser, managed.Applicants[0].UserID)
	assert.Equal(t, domain.StatusWaiting, managed.Applicants[0].Status)
	// A missing profile still yields a row carrying the user id.
	assert.Equal(t, approvedUser, managed.Applicants[1].UserID)
}

func TestTravelServiceMyCreatedTravels(t *testing.T) {
	userID := primitive.NewObjectID()
	travelID := primitive.NewObjectID()

	m := newTravelServiceMocks()
	m.users.On("FindByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
	m.travels.On("FindByUserID", mock.Anything, userID).Return([]domain.Travel{
		{ID: travelID, UserID: userID, TravelTitle: "Gyeongju history", TravelActive: true},
	}, nil)
	m.reviews.On("FindByTravelID", mock.Anything, travelID).Return([]domain.Review{
		{TravelScore: 5}, {TravelScore: 3},
	}, nil)
	m.teams.On("FindByTravelID", mock.Anything, travelID).Return([]domain.Team{
		{AppliedUsers: []domain.AppliedUser{
			{Status: domain.StatusWaiting},
			{Status: domain.StatusApproved},
			{Status: domain.StatusWaiting},
		}},
	}, nil)

	svc := newTravelService(t, m)
	rows, err := svc.MyCreatedTravels(context.Background(), userID.Hex())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].TravelReviewCount)
	assert.InDelta(t, 4.0, rows[0].ReviewAverage, 0.001)
	assert.Equal(t, 2, rows[0].ApproveWaitingCount)
}
