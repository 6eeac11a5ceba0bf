package handler

import (
	"net/http"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/logger"
)

// UserHandler handles user requests
type UserHandler struct {
	users  service.UserService
	teams  service.TeamService
	logger *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserService, teams service.TeamService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		teams:  teams,
		logger: log,
	}
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, resp, h.logger)
}

// UpdateUserStatus handles PATCH /api/v1/users/update-user-status
func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAppliedStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.teams.UpdateAppliedUserStatus(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, nil, h.logger)
}

// UpdateMBTI handles PATCH /api/v1/users/mbti
func (h *UserHandler) UpdateMBTI(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMBTIRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.users.UpdateMBTI(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}

// UpdatePhone handles PATCH /api/v1/users/phone
func (h *UserHandler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePhoneRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.users.UpdatePhoneNumber(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}

// UpdateBankAccount handles PATCH /api/v1/users/bank-account
func (h *UserHandler) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBankAccountRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.users.UpdateBankAccount(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, user, h.logger)
}
