package domain

import "time"

// Arrangement binds a Service to a Template starting at a calendar date.
// It anchors the recurring weekly pattern to real dates: slot generation
// expands the template relative to StartDate. An arrangement is treated as
// immutable once slots were generated from it; changing a schedule means
// creating a new arrangement.
type Arrangement struct {
	ID         int64
	ServiceID  int64
	TemplateID int64
	StartDate  time.Time // calendar date, time part zeroed
	SortOrder  int       // ordering when a service has multiple arrangements

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnchorWeekday returns the weekday index (0=Sunday..6=Saturday) of the start date.
func (a *Arrangement) AnchorWeekday() int {
	return int(a.StartDate.Weekday())
}
