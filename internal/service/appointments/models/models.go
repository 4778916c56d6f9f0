package models

import (
	"errors"
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID    int64      `json:"userId"`
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserAppointmentsRequest) ToDomainFilter() (domain.UserAppointmentsFilter, error) {
	filter := domain.UserAppointmentsFilter{
		UserID:    r.UserID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"-"`
	Status string `json:"status"`
}

// ListSlotsRequest запрос на получение слотов услуги
type ListSlotsRequest struct {
	ServiceID     int64      `json:"serviceId"`
	Date          *time.Time `json:"date,omitempty"` // Фильтр по дате (опционально)
	OnlyAvailable bool       `json:"onlyAvailable,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	ServiceID  int64  `json:"serviceId"`
	ProviderID int64  `json:"providerId"`
	SlotID     int64  `json:"slotId"`
	Date       string `json:"date"`      // "2026-03-16"
	StartTime  string `json:"startTime"` // "10:00"
	EndTime    string `json:"endTime"`   // "10:30"
	Status     string `json:"status"`
	BillID     int64  `json:"billId,omitempty"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID                  int64  `json:"id"`
	ServiceID           int64  `json:"serviceId"`
	Date                string `json:"date"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	MaxAppointments     int    `json:"maxAppointments"`
	CurrentAppointments int    `json:"currentAppointments"`
	IsAvailable         bool   `json:"isAvailable"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		ServiceID:    a.ServiceID,
		ProviderID:   a.ProviderID,
		SlotID:       a.SlotID,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		Status:       string(a.Status),
		BillID:       a.BillID,
		ServiceName:  a.ServiceName,
		ServicePrice: a.ServicePrice,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}

// FromDomainSlot конвертирует domain слот в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:                  s.ID,
		ServiceID:           s.ServiceID,
		Date:                s.Date.Format(domain.DateFormat),
		StartTime:           s.StartTime.String(),
		EndTime:             s.EndTime.String(),
		MaxAppointments:     s.MaxAppointments,
		CurrentAppointments: s.CurrentAppointments,
		IsAvailable:         s.IsAvailable,
	}
}

// FromDomainSlotList конвертирует список domain слотов в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
