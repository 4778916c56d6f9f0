package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/pkg/types"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			appt := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, appt.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_CanBeCancelled(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCancelled}).CanBeCancelled())
	assert.False(t, (&Appointment{Status: StatusCompleted}).CanBeCancelled())
}

func TestAppointment_IsActiveAndTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed} {
		appt := &Appointment{Status: status}
		assert.True(t, appt.IsActive(), status)
		assert.False(t, appt.IsTerminal(), status)
	}

	for _, status := range []AppointmentStatus{StatusCancelled, StatusCompleted} {
		appt := &Appointment{Status: status}
		assert.False(t, appt.IsActive(), status)
		assert.True(t, appt.IsTerminal(), status)
	}
}

func TestAppointment_StartsAt(t *testing.T) {
	appt := &Appointment{
		Date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:30"),
	}

	got, err := appt.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 14, 30, 0, 0, time.UTC), got)
}
