package list_templates

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

type ScheduleService interface {
	ListTemplates(ctx context.Context, providerID int64) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
