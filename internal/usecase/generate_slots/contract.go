package generate_slots

import (
	"context"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

// ArrangementRepository интерфейс репозитория связок услуга-шаблон
type ArrangementRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) ([]*domain.Arrangement, error)
}

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Template, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	SaveBatch(ctx context.Context, slots []*domain.Slot) error
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
