package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"travely-api/internal/domain"
	"travely-api/pkg/logger"
	"travely-api/pkg/redis"
)

// newTestCacheWithClient backs a CacheService with an in-process redis and
// returns the wrapped client so tests can seed or inspect keys.
func newTestCacheWithClient(t *testing.T) (*CacheService, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := redis.NewClientFromRedis(rdb, "development", zap.NewNop())
	return NewCacheService(client, zap.NewNop()), client
}

func newTestCache(t *testing.T) *CacheService {
	cache, _ := newTestCacheWithClient(t)
	return cache
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New("error")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

// duplicateKeyErr mimics the server error the unique indexes produce.
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindBySocialNameOrEmail(ctx context.Context, socialName, email string) (*domain.User, error) {
	args := m.Called(ctx, socialName, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdateMBTI(ctx context.Context, id primitive.ObjectID, mbti string) (*domain.User, error) {
	args := m.Called(ctx, id, mbti)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdatePhoneNumber(ctx context.Context, id primitive.ObjectID, phone string) (*domain.User, error) {
	args := m.Called(ctx, id, phone)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdateBankAccount(ctx context.Context, id primitive.ObjectID, account domain.BankAccount) (*domain.User, error) {
	args := m.Called(ctx, id, account)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) AddCreatedTravel(ctx context.Context, id, travelID primitive.ObjectID) error {
	args := m.Called(ctx, id, travelID)
	return args.Error(0)
}

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) Create(ctx mongo.SessionContext, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *mockTeamRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Team, error) {
	args := m.Called(ctx, travelID)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) FindByTravelAndTeamID(ctx context.Context, travelID, teamID primitive.ObjectID) (*domain.Team, error) {
	args := m.Called(ctx, travelID, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) FindByAppliedUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Team, error) {
	args := m.Called(ctx, userID)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) HasApprovedApplicant(ctx context.Context, travelID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, travelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTeamRepo) AddApplicant(ctx context.Context, teamID primitive.ObjectID, applicant domain.AppliedUser) (bool, error) {
	args := m.Called(ctx, teamID, applicant)
	return args.Bool(0), args.Error(1)
}

func (m *mockTeamRepo) UpdateApplicantStatus(ctx context.Context, teamID, userID primitive.ObjectID, status domain.AppliedStatus) (bool, error) {
	args := m.Called(ctx, teamID, userID, status)
	return args.Bool(0), args.Error(1)
}

type mockTravelRepo struct {
	mock.Mock
}

func (m *mockTravelRepo) Create(ctx mongo.SessionContext, travel *domain.Travel) error {
	args := m.Called(ctx, travel)
	return args.Error(0)
}

func (m *mockTravelRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Travel, error) {
	args := m.Called(ctx, id)
	travel, _ := args.Get(0).(*domain.Travel)
	return travel, args.Error(1)
}

func (m *mockTravelRepo) FindAll(ctx context.Context) ([]domain.Travel, error) {
	args := m.Called(ctx)
	travels, _ := args.Get(0).([]domain.Travel)
	return travels, args.Error(1)
}

func (m *mockTravelRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Travel, error) {
	args := m.Called(ctx, userID)
	travels, _ := args.Get(0).([]domain.Travel)
	return travels, args.Error(1)
}

func (m *mockTravelRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Travel, error) {
	args := m.Called(ctx, ids)
	travels, _ := args.Get(0).([]domain.Travel)
	return travels, args.Error(1)
}

func (m *mockTravelRepo) PushTeam(ctx mongo.SessionContext, travelID, teamID primitive.ObjectID) error {
	args := m.Called(ctx, travelID, teamID)
	return args.Error(0)
}

func (m *mockTravelRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (*domain.Travel, error) {
	args := m.Called(ctx, id, active)
	travel, _ := args.Get(0).(*domain.Travel)
	return travel, args.Error(1)
}

func (m *mockTravelRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*domain.Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) Find(ctx context.Context, filter domain.ReviewListFilter, page, size int64) ([]domain.Review, int64, error) {
	args := m.Called(ctx, filter, page, size)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepo) FindByTravelID(ctx context.Context, travelID primitive.ObjectID) ([]domain.Review, error) {
	args := m.Called(ctx, travelID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, travelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockBookmarkRepo struct {
	mock.Mock
}

func (m *mockBookmarkRepo) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *mockBookmarkRepo) Delete(ctx context.Context, userID, travelID primitive.ObjectID) (*domain.Bookmark, error) {
	args := m.Called(ctx, userID, travelID)
	bookmark, _ := args.Get(0).(*domain.Bookmark)
	return bookmark, args.Error(1)
}

func (m *mockBookmarkRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Bookmark, error) {
	args := m.Called(ctx, userID)
	bookmarks, _ := args.Get(0).([]domain.Bookmark)
	return bookmarks, args.Error(1)
}

func (m *mockBookmarkRepo) Exists(ctx context.Context, userID, travelID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, travelID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookmarkRepo) TravelIDsByUserID(ctx context.Context, userID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).(map[primitive.ObjectID]bool)
	return ids, args.Error(1)
}

func (m *mockBookmarkRepo) CountByTravelID(ctx context.Context, travelID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, travelID)
	return args.Get(0).(int64), args.Error(1)
}

type mockRatingRepo struct {
	mock.Mock
}

func (m *mockRatingRepo) Create(ctx context.Context, rating *domain.UserRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepo) ScoresByToUserID(ctx context.Context, toUserID primitive.ObjectID) ([]float64, error) {
	args := m.Called(ctx, toUserID)
	scores, _ := args.Get(0).([]float64)
	return scores, args.Error(1)
}

type mockTravelGuideRepo struct {
	mock.Mock
}

func (m *mockTravelGuideRepo) Create(ctx mongo.SessionContext, guide *domain.TravelGuide) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *mockTravelGuideRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.TravelGuide, error) {
	args := m.Called(ctx, id)
	guide, _ := args.Get(0).(*domain.TravelGuide)
	return guide, args.Error(1)
}

func (m *mockTravelGuideRepo) FindAll(ctx context.Context) ([]domain.TravelGuide, error) {
	args := m.Called(ctx)
	guides, _ := args.Get(0).([]domain.TravelGuide)
	return guides, args.Error(1)
}

func (m *mockTravelGuideRepo) PushTeam(ctx mongo.SessionContext, guideID, teamID primitive.ObjectID) error {
	args := m.Called(ctx, guideID, teamID)
	return args.Error(0)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) FindOwned(ctx context.Context, commentID, userID primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, userID)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) Update(ctx context.Context, commentID, userID primitive.ObjectID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID, userID, text)
	comment, _ := args.Get(0).(*domain.Comment)
	return comment, args.Error(1)
}

func (m *mockCommentRepo) SoftDelete(ctx context.Context, commentID, userID primitive.ObjectID) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) IssueToken(userID, userEmail string) (string, error) {
	args := m.Called(userID, userEmail)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) ValidateToken(token string) (*domain.AuthClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*domain.AuthClaims)
	return claims, args.Error(1)
}
