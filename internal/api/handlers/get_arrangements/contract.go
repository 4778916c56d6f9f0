package get_arrangements

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetServiceArrangements(ctx context.Context, serviceID int64) (*models.ArrangementListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
