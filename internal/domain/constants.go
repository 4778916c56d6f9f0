package domain

// Default configuration values
const (
	DefaultMaxAppointmentsPerSlot = 1
	DefaultDurationMinutes        = 30

	// CancellationNoticeHours is the minimum notice before the appointment
	// start required for a cancellation to be accepted.
	CancellationNoticeHours = 24
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MinWeekdayIndex = 0
	MaxWeekdayIndex = 6

	MaxTemplateNameLength = 200
	MaxTemplateDays       = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых запись занимает место в слоте
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список финальных статусов записи
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
