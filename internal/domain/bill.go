package domain

import "time"

// BillStatus represents the status of a bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusPaid      BillStatus = "paid"
	BillStatusCancelled BillStatus = "cancelled"
)

// Bill is the billing record created atomically with its Appointment.
// Amount is a snapshot of the service price at booking time, not a live
// reference to the catalog. The status mirrors appointment cancellation.
type Bill struct {
	ID            int64
	AppointmentID int64
	Amount        float64
	Status        BillStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the bill has been voided.
func (b *Bill) IsCancelled() bool {
	return b.Status == BillStatusCancelled
}

// IsSettled returns true if the bill reached a final state.
func (b *Bill) IsSettled() bool {
	return b.Status == BillStatusPaid || b.Status == BillStatusCancelled
}
