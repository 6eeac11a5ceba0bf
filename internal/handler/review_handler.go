package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
	"travely-api/pkg/utils"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviews service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		logger:  log,
	}
}

// List handles GET /api/v1/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, ok := utils.ParsePage(q.Get("page"), q.Get("pageSize"), defaultPageSize)
	if !ok {
		respondError(w, errors.NewValidationError("page and pageSize must be positive integers"), h.logger)
		return
	}

	result, err := h.reviews.ListReviews(r.Context(), q.Get("userId"), q.Get("travelId"), page, size)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result, h.logger)
}

// Create handles POST /api/v1/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, review, h.logger)
}

// Delete handles DELETE /api/v1/reviews/{reviewId}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteReview(r.Context(), chi.URLParam(r, "reviewId")); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, nil, h.logger)
}
