package list_slots

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
