package get_template

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetTemplate(ctx context.Context, id int64) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
