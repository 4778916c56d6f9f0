package domain

import (
	"time"

	"github.com/avdeenko/appointment-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is a user's claim on one unit of a Slot's capacity.
// It holds a non-owning reference to its Slot: capacity bookkeeping stays in
// the slot repository, and the appointment only records which slot it claimed.
type Appointment struct {
	ID         int64
	UserID     int64
	ServiceID  int64
	ProviderID int64
	SlotID     int64
	Date       time.Time // calendar date, time part zeroed
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     AppointmentStatus
	BillID     int64

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the state machine permits the transition.
// Allowed: pending->confirmed, pending|confirmed->cancelled,
// confirmed->completed. Cancelled and completed are terminal.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// CanBeCancelled reports whether the appointment is in a cancellable state.
func (a *Appointment) CanBeCancelled() bool {
	return a.CanTransitionTo(StatusCancelled)
}

// IsActive returns true if the appointment still occupies slot capacity.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are possible.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// StartsAt combines the appointment date and start time into a concrete time.Time.
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.OnDate(a.Date)
}

// UserAppointmentsFilter narrows appointment listings for one user.
type UserAppointmentsFilter struct {
	UserID    int64
	Status    *AppointmentStatus // optional
	StartDate *time.Time         // optional period start
	EndDate   *time.Time         // optional period end
}
