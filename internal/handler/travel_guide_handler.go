package handler

import (
	"net/http"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
	"travely-api/pkg/utils"
)

// TravelGuideHandler handles guide posting requests
type TravelGuideHandler struct {
	guides service.TravelGuideService
	logger *logger.Logger
}

// NewTravelGuideHandler creates a new travel guide handler
func NewTravelGuideHandler(guides service.TravelGuideService, log *logger.Logger) *TravelGuideHandler {
	return &TravelGuideHandler{
		guides: guides,
		logger: log,
	}
}

// AddTravel handles POST /api/v1/travels-guide/add-travel
func (h *TravelGuideHandler) AddTravel(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTravelGuideRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	guide, err := h.guides.CreateTravelGuide(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, guide, h.logger)
}

// List handles GET /api/v1/travels-guide/travel
func (h *TravelGuideHandler) List(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guides.List(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, guides, h.logger)
}

// TravelList handles GET /api/v1/travels-guide/travel-list
func (h *TravelGuideHandler) TravelList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, ok := utils.ParsePage(q.Get("page"), q.Get("size"), defaultPageSize)
	if !ok {
		respondError(w, errors.NewValidationError("page and size must be positive integers"), h.logger)
		return
	}

	result, err := h.guides.ListTravelGuides(r.Context(), q.Get("userId"), page, size)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result, h.logger)
}
