package get_service

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
