package service

import (
	"context"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

// commentService implements the CommentService interface
type commentService struct {
	comments repository.CommentRepository
	guides   repository.TravelGuideRepository
	users    repository.UserRepository
	logger   *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	comments repository.CommentRepository,
	guides repository.TravelGuideRepository,
	users repository.UserRepository,
	log *logger.Logger,
) CommentService {
	return &commentService{
		comments: comments,
		guides:   guides,
		users:    users,
		logger:   log,
	}
}

// CreateComment adds a comment to a guide posting
func (s *commentService) CreateComment(ctx context.Context, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	travelID, err := parseObjectID(req.TravelID, "travelId")
	if err != nil {
		return nil, err
	}
	if req.Comment == "" {
		return nil, errors.NewValidationError("comment is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("User not found")
	}

	guide, err := s.guides.FindByID(ctx, travelID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to look up travel guide", err)
	}
	if guide == nil {
		return nil, errors.NewNotFoundError("Travel guide not found")
	}

	comment := &domain.Comment{
		UserID:   userID,
		TravelID: travelID,
		Comment:  req.Comment,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, errors.NewInternalError("Failed to create comment", err)
	}
	return comment, nil
}

// UpdateComment edits a comment. Only the author may edit; a non-owned or
// deleted comment reads as not found.
func (s *commentService) UpdateComment(ctx context.Context, req *domain.UpdateCommentRequest) (*domain.Comment, error) {
	commentID, err := parseObjectID(req.CommentID, "commentId")
	if err != nil {
		return nil, err
	}
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return nil, err
	}
	if req.Comment == "" {
		return nil, errors.NewValidationError("comment is required")
	}

	comment, err := s.comments.Update(ctx, commentID, userID, req.Comment)
	if err != nil {
		return nil, errors.NewInternalError("Failed to update comment", err)
	}
	if comment == nil {
		return nil, errors.NewNotFoundError("Comment not found")
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment owned by the requester
func (s *commentService) DeleteComment(ctx context.Context, req *domain.DeleteCommentRequest) error {
	commentID, err := parseObjectID(req.CommentID, "commentId")
	if err != nil {
		return err
	}
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return err
	}

	comment, err := s.comments.FindOwned(ctx, commentID, userID)
	if err != nil {
		return errors.NewInternalError("Failed to look up comment", err)
	}
	if comment == nil {
		return errors.NewNotFoundError("Comment not found")
	}

	if err := s.comments.SoftDelete(ctx, commentID, userID); err != nil {
		return errors.NewInternalError("Failed to delete comment", err)
	}

	s.logger.WithField("comment_id", commentID.Hex()).Info("Comment deleted")
	return nil
}
