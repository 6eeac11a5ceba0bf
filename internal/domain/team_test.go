package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppliedStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   AppliedStatus
		valid    bool
		terminal bool
	}{
		{name: "waiting", status: StatusWaiting, valid: true, terminal: false},
		{name: "approved", status: StatusApproved, valid: true, terminal: true},
		{name: "rejected", status: StatusRejected, valid: true, terminal: true},
		{name: "unknown value", status: AppliedStatus("pending"), valid: false, terminal: false},
		{name: "empty value", status: AppliedStatus(""), valid: false, terminal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestSortAppliedUsers(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	userC := primitive.NewObjectID()

	t.Run("waiting sorts before approved regardless of time", func(t *testing.T) {
		users := []AppliedUser{
			{UserID: userA, Status: StatusApproved, AppliedAt: base.Add(2 * time.Hour)},
			{UserID: userB, Status: StatusWaiting, AppliedAt: base.Add(1 * time.Hour)},
			{UserID: userC, Status: StatusWaiting, AppliedAt: base},
		}

		sorted := SortAppliedUsers(users)

		assert.Equal(t, userC, sorted[0].UserID)
		assert.Equal(t, userB, sorted[1].UserID)
		assert.Equal(t, userA, sorted[2].UserID)
	})

	t.Run("rejected sorts last", func(t *testing.T) {
		users := []AppliedUser{
			{UserID: userA, Status: StatusRejected, AppliedAt: base},
			{UserID: userB, Status: StatusApproved, AppliedAt: base.Add(time.Hour)},
			{UserID: userC, Status: StatusWaiting, AppliedAt: base.Add(2 * time.Hour)},
		}

		sorted := SortAppliedUsers(users)

		assert.Equal(t, StatusWaiting, sorted[0].Status)
		assert.Equal(t, StatusApproved, sorted[1].Status)
		assert.Equal(t, StatusRejected, sorted[2].Status)
	})

	t.Run("ties within a status break by earliest application", func(t *testing.T) {
		users := []AppliedUser{
			{UserID: userA, Status: StatusWaiting, AppliedAt: base.Add(time.Minute)},
			{UserID: userB, Status: StatusWaiting, AppliedAt: base},
		}

		sorted := SortAppliedUsers(users)

		assert.Equal(t, userB, sorted[0].UserID)
		assert.Equal(t, userA, sorted[1].UserID)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		users := []AppliedUser{
			{UserID: userA, Status: StatusRejected, AppliedAt: base},
			{UserID: userB, Status: StatusWaiting, AppliedAt: base},
		}

		_ = SortAppliedUsers(users)

		assert.Equal(t, userA, users[0].UserID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SortAppliedUsers(nil))
	})
}

func TestCountByStatus(t *testing.T) {
	users := []AppliedUser{
		{Status: StatusWaiting},
		{Status: StatusWaiting},
		{Status: StatusApproved},
		{Status: StatusRejected},
	}

	assert.Equal(t, 2, CountByStatus(users, StatusWaiting))
	assert.Equal(t, 1, CountByStatus(users, StatusApproved))
	assert.Equal(t, 1, CountByStatus(users, StatusRejected))
	assert.Equal(t, 0, CountByStatus(nil, StatusWaiting))
}

func TestTeamHasApplicant(t *testing.T) {
	userID := primitive.NewObjectID()
	team := &Team{
		AppliedUsers: []AppliedUser{{UserID: userID, Status: StatusWaiting}},
	}

	assert.True(t, team.HasApplicant(userID))
	assert.False(t, team.HasApplicant(primitive.NewObjectID()))
}
