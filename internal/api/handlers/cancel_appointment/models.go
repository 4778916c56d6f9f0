package cancel_appointment

import (
	"time"

	cancelAppointment "github.com/avdeenko/appointment-service/internal/usecase/cancel_appointment"
)

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	AppointmentID int64  `json:"appointmentId"`
	Status        string `json:"status"`
	BillStatus    string `json:"billStatus"`
	CancelledAt   string `json:"cancelledAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		AppointmentID: resp.AppointmentID,
		Status:        resp.Status,
		BillStatus:    resp.BillStatus,
		CancelledAt:   resp.CancelledAt.Format(time.RFC3339),
	}
}
