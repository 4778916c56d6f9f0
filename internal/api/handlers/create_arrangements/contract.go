package create_arrangements

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateArrangements(ctx context.Context, req *models.CreateArrangementsRequest) (*models.ArrangementListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
