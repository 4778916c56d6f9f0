package domain

import (
	"time"

	"github.com/avdeenko/appointment-service/pkg/types"
)

// Template is a provider-defined reusable weekly availability pattern.
// It owns an ordered list of Days, each grouping Segments for one weekday.
type Template struct {
	ID         int64
	ProviderID int64
	Name       string
	Days       []Day

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day groups the availability segments of one weekday within a Template.
// Weekday uses 0=Sunday..6=Saturday indices, matching time.Weekday.
type Day struct {
	ID          int64
	TemplateID  int64
	Weekday     int
	IsAvailable bool
	Segments    []Segment
}

// Segment is a contiguous [StartTime, EndTime) availability window within a Day.
// Invariant: StartTime < EndTime; segments within a Day must not overlap.
type Segment struct {
	ID         int64
	DayID      int64
	TemplateID int64
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// AvailableDays returns the days of the template with the availability flag set.
func (t *Template) AvailableDays() []Day {
	days := make([]Day, 0, len(t.Days))
	for _, d := range t.Days {
		if d.IsAvailable {
			days = append(days, d)
		}
	}
	return days
}

// DayByWeekday returns the day matching the given weekday index, if present.
func (t *Template) DayByWeekday(weekday int) (Day, bool) {
	for _, d := range t.Days {
		if d.Weekday == weekday {
			return d, true
		}
	}
	return Day{}, false
}

// IsValid reports whether the segment satisfies StartTime < EndTime.
func (s *Segment) IsValid() bool {
	if s.StartTime.Validate() != nil || s.EndTime.Validate() != nil {
		return false
	}
	return s.StartTime.IsBefore(s.EndTime)
}

// DurationMinutes returns the length of the segment in minutes.
func (s *Segment) DurationMinutes() (int, error) {
	return s.StartTime.MinutesUntil(s.EndTime)
}

// Overlaps reports whether two segments share any time. Touching boundaries
// (one ends exactly where the other starts) do not count as overlap.
func (s *Segment) Overlaps(other *Segment) bool {
	return s.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(s.EndTime)
}
