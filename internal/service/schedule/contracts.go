package schedule

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

// TemplateRepository интерфейс репозитория шаблонов расписания
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error)
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
	ListByProvider(ctx context.Context, providerID int64) ([]*domain.Template, error)
}

// ArrangementRepository интерфейс репозитория назначений шаблонов
type ArrangementRepository interface {
	CreateBatch(ctx context.Context, arrs []*domain.Arrangement) ([]*domain.Arrangement, error)
	GetByServiceID(ctx context.Context, serviceID int64) ([]*domain.Arrangement, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
