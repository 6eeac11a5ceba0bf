package handler

import (
	"net/http"

	"travely-api/internal/domain"
	"travely-api/internal/service"
	"travely-api/pkg/logger"
)

// TeamHandler handles applicant lifecycle requests
type TeamHandler struct {
	teams  service.TeamService
	logger *logger.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teams service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		teams:  teams,
		logger: log,
	}
}

// Join handles POST /api/v1/teams/join
func (h *TeamHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req domain.JoinTeamRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.teams.JoinTeam(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	respondJSON(w, http.StatusCreated, nil, h.logger)
}
