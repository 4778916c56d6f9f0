package cancel_appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyAllows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		allowed bool
	}{
		{"far in the future", now.Add(72 * time.Hour), true},
		{"just over the window", now.Add(24*time.Hour + time.Minute), true},
		{"exactly at the boundary", now.Add(24 * time.Hour), true},
		{"just inside the window", now.Add(24*time.Hour - time.Minute), false},
		{"an hour before start", now.Add(time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, PolicyAllows(tt.start, now))
		})
	}
}

func TestRoleIsElevated(t *testing.T) {
	assert.False(t, RoleUser.IsElevated())
	assert.True(t, RoleManager.IsElevated())
	assert.True(t, RoleAdmin.IsElevated())
	assert.False(t, Role("").IsElevated())
	assert.False(t, Role("guest").IsElevated())
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		ownerID  int64
		callerID int64
		want     bool
	}{
		{"owner cancels own", RoleUser, 7, 7, true},
		{"stranger denied", RoleUser, 7, 8, false},
		{"manager cancels foreign", RoleManager, 7, 8, true},
		{"admin cancels foreign", RoleAdmin, 7, 8, true},
		{"unknown role denied", Role("guest"), 7, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canCancel(tt.role, tt.ownerID, tt.callerID))
		})
	}
}
