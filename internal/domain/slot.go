package domain

import (
	"time"

	"github.com/avdeenko/appointment-service/pkg/types"
)

// Slot is a concrete bookable time window on a calendar date, produced by
// expanding an Arrangement's template. The capacity counter pair
// (CurrentAppointments, MaxAppointments) is the single contended resource of
// the booking path; it is mutated only through the slot repository's
// Claim/Release operations.
type Slot struct {
	ID                  int64
	ServiceID           int64
	ArrangementID       int64
	Date                time.Time // calendar date, time part zeroed
	StartTime           types.TimeString
	EndTime             types.TimeString
	MaxAppointments     int
	CurrentAppointments int
	IsAvailable         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCapacity reports whether at least one more appointment fits into the slot.
func (s *Slot) HasCapacity() bool {
	return s.CurrentAppointments < s.MaxAppointments
}

// IsFull reports whether the slot capacity is exhausted.
func (s *Slot) IsFull() bool {
	return s.CurrentAppointments >= s.MaxAppointments
}

// StartsAt combines the slot date and start time into a concrete time.Time.
func (s *Slot) StartsAt() (time.Time, error) {
	return s.StartTime.OnDate(s.Date)
}

// SlotFilter narrows slot listings.
type SlotFilter struct {
	ServiceID     int64
	Date          *time.Time // exact date (optional)
	OnlyAvailable bool
}
