package handler

import (
	"net/http"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/logger"
)

// CommentHandler handles guide post comment requests
type CommentHandler struct {
	comments service.CommentService
	logger   *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   log,
	}
}

// Create handles POST /api/v1/travels-guide/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, comment, h.logger)
}

// Update handles PATCH /api/v1/travels-guide/comments
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, comment, h.logger)
}

// Delete handles DELETE /api/v1/travels-guide/comments
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteCommentRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, nil, h.logger)
}
