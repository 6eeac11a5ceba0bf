package handler

import (
	"net/http"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/logger"
)

// BookmarkHandler handles bookmark requests
type BookmarkHandler struct {
	bookmarks service.BookmarkService
	logger    *logger.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(bookmarks service.BookmarkService, log *logger.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarks: bookmarks,
		logger:    log,
	}
}

// bookmarkStatus is the response of a bookmark membership check.
type bookmarkStatus struct {
	Bookmarked bool `json:"bookmarked"`
}

// Get handles GET /api/v1/bookmarks
func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookmarked, err := h.bookmarks.IsBookmarked(r.Context(), q.Get("userId"), q.Get("travelId"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, bookmarkStatus{Bookmarked: bookmarked}, h.logger)
}

// Create handles POST /api/v1/bookmarks
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.BookmarkRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.bookmarks.AddBookmark(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, nil, h.logger)
}

// Delete handles DELETE /api/v1/bookmarks
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req domain.BookmarkRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.bookmarks.RemoveBookmark(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, nil, h.logger)
}
