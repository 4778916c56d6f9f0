package book_appointment

import (
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
	bookAppointment "github.com/avdeenko/appointment-service/internal/usecase/book_appointment"
	"github.com/avdeenko/appointment-service/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2026-03-16"
	StartTime string `json:"startTime"` // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	ServiceID    int64   `json:"serviceId"`
	ProviderID   int64   `json:"providerId"`
	SlotID       int64   `json:"slotId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	BillID       int64   `json:"billId"`
	BillAmount   float64 `json:"billAmount"`
	BillStatus   string  `json:"billStatus"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(userID int64) (*bookAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		UserID:    userID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		ServiceID:    resp.ServiceID,
		ProviderID:   resp.ProviderID,
		SlotID:       resp.SlotID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		BillID:       resp.BillID,
		BillAmount:   resp.BillAmount,
		BillStatus:   resp.BillStatus,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
