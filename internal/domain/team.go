package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppliedStatus is the lifecycle state of a team application.
// waiting is the initial state; approved and rejected are terminal.
type AppliedStatus string

const (
	StatusWaiting  AppliedStatus = "waiting"
	StatusApproved AppliedStatus = "approved"
	StatusRejected AppliedStatus = "rejected"
)

// Valid reports whether s is one of the three known states.
func (s AppliedStatus) Valid() bool {
	return s == StatusWaiting || s == StatusApproved || s == StatusRejected
}

// Terminal reports whether no further transition is allowed from s.
func (s AppliedStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// statusPriority orders applicants on the management page: waiting first,
// then approved, then rejected.
var statusPriority = map[AppliedStatus]int{
	StatusWaiting:  1,
	StatusApproved: 2,
	StatusRejected: 3,
}

// AppliedUser is one user's application to a team.
type AppliedUser struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	AppliedAt time.Time          `bson:"appliedAt" json:"appliedAt"`
	Status    AppliedStatus      `bson:"status" json:"status"`
}

// SortAppliedUsers orders applicants by status priority, tie-broken by
// application time ascending. The sort is stable.
func SortAppliedUsers(users []AppliedUser) []AppliedUser {
	sorted := make([]AppliedUser, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := statusPriority[sorted[i].Status], statusPriority[sorted[j].Status]
		if pi != pj {
			return pi < pj
		}
		return sorted[i].AppliedAt.Before(sorted[j].AppliedAt)
	})
	return sorted
}

// CountByStatus counts applicants in the given state.
func CountByStatus(users []AppliedUser, status AppliedStatus) int {
	n := 0
	for _, u := range users {
		if u.Status == status {
			n++
		}
	}
	return n
}

// Team is the applicant-management unit attached to a posting.
type Team struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"teamId"`
	TravelID        primitive.ObjectID `bson:"travelId" json:"travelId"`
	PersonLimit     int                `bson:"personLimit" json:"personLimit"`
	AppliedUsers    []AppliedUser      `bson:"appliedUsers" json:"appliedUsers"`
	TravelStartDate time.Time          `bson:"travelStartDate" json:"travelStartDate"`
	TravelEndDate   time.Time          `bson:"travelEndDate" json:"travelEndDate"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasApplicant reports whether the user already has an entry on the team.
func (t *Team) HasApplicant(userID primitive.ObjectID) bool {
	for _, u := range t.AppliedUsers {
		if u.UserID == userID {
			return true
		}
	}
	return false
}

// CreateTeamRequest is the embedded team payload of a create-posting request.
type CreateTeamRequest struct {
	PersonLimit     int       `json:"personLimit"`
	TravelStartDate time.Time `json:"travelStartDate"`
	TravelEndDate   time.Time `json:"travelEndDate"`
}

// JoinTeamRequest applies a user to a team with the initial waiting status.
type JoinTeamRequest struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
}

// UpdateAppliedStatusRequest moves an applicant from waiting to a terminal state.
type UpdateAppliedStatusRequest struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// AppliedUserDetail is an applicant joined with their profile fields.
type AppliedUserDetail struct {
	UserSummary
	AppliedAt time.Time     `json:"appliedAt"`
	Status    AppliedStatus `json:"status"`
}

// TeamOverview summarizes a team for the travel detail view.
type TeamOverview struct {
	TeamID          primitive.ObjectID  `json:"teamId"`
	TravelStartDate time.Time           `json:"travelStartDate"`
	TravelEndDate   time.Time           `json:"travelEndDate"`
	PersonLimit     int                 `json:"personLimit"`
	ApprovedUsers   []AppliedUserDetail `json:"approvedUsers"`
}
