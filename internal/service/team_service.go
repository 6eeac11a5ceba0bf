package service

import (
	"context"
	"time"

	"travely-api/internal/domain"
	"travely-api/internal/repository"
	"travely-api/pkg/errors"
	"travely-api/pkg/logger"
)

// teamService implements the TeamService interface
type teamService struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	logger *logger.Logger
}

// NewTeamService creates a new team service
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository, log *logger.Logger) TeamService {
	return &teamService{
		teams:  teams,
		users:  users,
		logger: log,
	}
}

// JoinTeam appends a waiting entry for the user. The repository's filtered
// update guarantees at most one entry per (team, user) even under concurrent
// joins.
func (s *teamService) JoinTeam(ctx context.Context, req *domain.JoinTeamRequest) error {
	teamID, err := parseObjectID(req.TeamID, "teamId")
	if err != nil {
		return err
	}
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return errors.NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return errors.NewNotFoundError("User not found")
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return errors.NewInternalError("Failed to look up team", err)
	}
	if team == nil {
		return errors.NewNotFoundError("Team not found")
	}

	applicant := domain.AppliedUser{
		UserID:    userID,
		AppliedAt: time.Now(),
		Status:    domain.StatusWaiting,
	}
	added, err := s.teams.AddApplicant(ctx, teamID, applicant)
	if err != nil {
		return errors.NewInternalError("Failed to join team", err)
	}
	if !added {
		return errors.NewConflictError("User has already applied to this team")
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id": teamID.Hex(),
		"user_id": userID.Hex(),
	}).Info("User applied to team")
	return nil
}

// UpdateAppliedUserStatus moves a waiting applicant to approved or rejected.
// Terminal entries never change again.
func (s *teamService) UpdateAppliedUserStatus(ctx context.Context, req *domain.UpdateAppliedStatusRequest) error {
	teamID, err := parseObjectID(req.TeamID, "teamId")
	if err != nil {
		return err
	}
	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		return err
	}

	status := domain.AppliedStatus(req.Status)
	if !status.Terminal() {
		return errors.NewValidationError("status must be approved or rejected")
	}

	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return errors.NewInternalError("Failed to look up team", err)
	}
	if team == nil {
		return errors.NewNotFoundError("Team not found")
	}
	if !team.HasApplicant(userID) {
		return errors.NewNotFoundError("User has not applied to this team")
	}

	updated, err := s.teams.UpdateApplicantStatus(ctx, teamID, userID, status)
	if err != nil {
		return errors.NewInternalError("Failed to update applicant status", err)
	}
	if !updated {
		// The entry exists but was not waiting.
		return errors.NewConflictError("Applicant status is already final")
	}

	s.logger.WithFields(map[string]interface{}{
		"team_id": teamID.Hex(),
		"user_id": userID.Hex(),
		"status":  string(status),
	}).Info("Applicant status updated")
	return nil
}
