package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"travely-api/internal/domain"
	"travely-api/pkg/errors"
)

func TestCommentServiceCreateComment(t *testing.T) {
	userID := primitive.NewObjectID()
	guideID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		comments := new(mockCommentRepo)
		guides := new(mockTravelGuideRepo)
		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		guides.On("FindByID", mock.Anything, guideID).Return(&domain.TravelGuide{ID: guideID}, nil)
		comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.UserID == userID && c.TravelID == guideID && c.Comment == "Looks fun"
		})).Return(nil)

		svc := NewCommentService(comments, guides, users, testLogger(t))
		comment, err := svc.CreateComment(context.Background(), &domain.CreateCommentRequest{
			UserID:   userID.Hex(),
			TravelID: guideID.Hex(),
			Comment:  "Looks fun",
		})

		require.NoError(t, err)
		assert.Equal(t, "Looks fun", comment.Comment)
	})

	t.Run("empty comment", func(t *testing.T) {
		svc := NewCommentService(new(mockCommentRepo), new(mockTravelGuideRepo), new(mockUserRepo), testLogger(t))
		_, err := svc.CreateComment(context.Background(), &domain.CreateCommentRequest{
			UserID:   userID.Hex(),
			TravelID: guideID.Hex(),
		})
		assertErrorType(t, err, errors.ErrorTypeValidation)
	})

	t.Run("unknown guide posting", func(t *testing.T) {
		comments := new(mockCommentRepo)
		guides := new(mockTravelGuideRepo)
		users := new(mockUserRepo)
		users.On("FindByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		guides.On("FindByID", mock.Anything, guideID).Return(nil, nil)

		svc := NewCommentService(comments, guides, users, testLogger(t))
		_, err := svc.CreateComment(context.Background(), &domain.CreateCommentRequest{
			UserID:   userID.Hex(),
			TravelID: guideID.Hex(),
			Comment:  "Looks fun",
		})
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestCommentServiceUpdateComment(t *testing.T) {
	commentID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		comments := new(mockCommentRepo)
		comments.On("Update", mock.Anything, commentID, userID, "edited").
			Return(&domain.Comment{ID: commentID, UserID: userID, Comment: "edited"}, nil)

		svc := NewCommentService(comments, new(mockTravelGuideRepo), new(mockUserRepo), testLogger(t))
		comment, err := svc.UpdateComment(context.Background(), &domain.UpdateCommentRequest{
			CommentID: commentID.Hex(),
			UserID:    userID.Hex(),
			Comment:   "edited",
		})

		require.NoError(t, err)
		assert.Equal(t, "edited", comment.Comment)
	})

	t.Run("not owned reads as not found", func(t *testing.T) {
		comments := new(mockCommentRepo)
		comments.On("Update", mock.Anything, commentID, userID, "edited").Return(nil, nil)

		svc := NewCommentService(comments, new(mockTravelGuideRepo), new(mockUserRepo), testLogger(t))
		_, err := svc.UpdateComment(context.Background(), &domain.UpdateCommentRequest{
			CommentID: commentID.Hex(),
			UserID:    userID.Hex(),
			Comment:   "edited",
		})
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}

func TestCommentServiceDeleteComment(t *testing.T) {
	commentID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	req := &domain.DeleteCommentRequest{CommentID: commentID.Hex(), UserID: userID.Hex()}

	t.Run("success", func(t *testing.T) {
		comments := new(mockCommentRepo)
		comments.On("FindOwned", mock.Anything, commentID, userID).
			Return(&domain.Comment{ID: commentID, UserID: userID}, nil)
		comments.On("SoftDelete", mock.Anything, commentID, userID).Return(nil)

		svc := NewCommentService(comments, new(mockTravelGuideRepo), new(mockUserRepo), testLogger(t))
		assert.NoError(t, svc.DeleteComment(context.Background(), req))
	})

	t.Run("unknown comment", func(t *testing.T) {
		comments := new(mockCommentRepo)
		comments.On("FindOwned", mock.Anything, commentID, userID).Return(nil, nil)

		svc := NewCommentService(comments, new(mockTravelGuideRepo), new(mockUserRepo), testLogger(t))
		err := svc.DeleteComment(context.Background(), req)
		assertErrorType(t, err, errors.ErrorTypeNotFound)
	})
}
