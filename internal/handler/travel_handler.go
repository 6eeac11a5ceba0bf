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

const defaultPageSize = 10

// TravelHandler handles trip posting requests
type TravelHandler struct {
	travels   service.TravelService
	bookmarks service.BookmarkService
	logger    *logger.Logger
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(travels service.TravelService, bookmarks service.BookmarkService, log *logger.Logger) *TravelHandler {
	return &TravelHandler{
		travels:   travels,
		bookmarks: bookmarks,
		logger:    log,
	}
}

// AddTravel handles POST /api/v1/travels/add-travel
func (h *TravelHandler) AddTravel(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTravelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	travel, err := h.travels.CreateTravel(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, travel, h.logger)
}

// List handles GET /api/v1/travels and GET /api/v1/travels/travel-list
func (h *TravelHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, ok := utils.ParsePage(q.Get("page"), q.Get("size"), defaultPageSize)
	if !ok {
		respondError(w, errors.NewValidationError("page and size must be positive integers"), h.logger)
		return
	}

	result, err := h.travels.ListTravels(r.Context(), q.Get("userId"), page, size)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result, h.logger)
}

// Detail handles GET /api/v1/travels/detail/{travelId}
func (h *TravelHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.travels.TravelDetail(r.Context(), chi.URLParam(r, "travelId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, detail, h.logger)
}

// BookmarkList handles GET /api/v1/travels/bookmark-list
func (h *TravelHandler) BookmarkList(w http.ResponseWriter, r *http.Request) {
	items, err := h.bookmarks.ListUserBookmarks(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, items, h.logger)
}

// MyTravels handles GET /api/v1/travels/my-travels
func (h *TravelHandler) MyTravels(w http.ResponseWriter, r *http.Request) {
	items, err := h.travels.MyTravels(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, items, h.logger)
}

// MyCreatedTravels handles GET /api/v1/travels/my-created-travels
func (h *TravelHandler) MyCreatedTravels(w http.ResponseWriter, r *http.Request) {
	items, err := h.travels.MyCreatedTravels(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, items, h.logger)
}

// ManageMyTravel handles GET /api/v1/travels/manage-my-travel/{travelId}
func (h *TravelHandler) ManageMyTravel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, size, ok := utils.ParsePage(q.Get("page"), q.Get("size"), defaultPageSize)
	if !ok {
		respondError(w, errors.NewValidationError("page and size must be positive integers"), h.logger)
		return
	}

	result, err := h.travels.ManageMyTravel(r.Context(), chi.URLParam(r, "travelId"), page, size)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result, h.logger)
}

// ManageMyTravelTeams handles GET /api/v1/travels/manage-my-travel-teams/{travelId}
func (h *TravelHandler) ManageMyTravelTeams(w http.ResponseWriter, r *http.Request) {
	result, err := h.travels.ManageMyTravelTeams(r.Context(), chi.URLParam(r, "travelId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, result, h.logger)
}

// updateActiveRequest toggles a posting's recruiting flag.
type updateActiveRequest struct {
	TravelID     string `json:"travelId"`
	TravelActive bool   `json:"travelActive"`
}

// UpdateActive handles PATCH /api/v1/travels/update-active
func (h *TravelHandler) UpdateActive(w http.ResponseWriter, r *http.Request) {
	var req updateActiveRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	travel, err := h.travels.UpdateActive(r.Context(), req.TravelID, req.TravelActive)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, travel, h.logger)
}

// deleteTravelRequest identifies the posting to soft-delete.
type deleteTravelRequest struct {
	TravelID string `json:"travelId"`
}

// DeleteTravel handles PATCH /api/v1/travels/delete-travel
func (h *TravelHandler) DeleteTravel(w http.ResponseWriter, r *http.Request) {
	var req deleteTravelRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.travels.DeleteTravel(r.Context(), req.TravelID); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, nil, h.logger)
}
