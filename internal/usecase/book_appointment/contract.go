package book_appointment

import (
	"context"
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// FindByServiceDateTime находит слот услуги по дате и времени начала
	// (внутри транзакции строка блокируется через FOR UPDATE)
	FindByServiceDateTime(ctx context.Context, serviceID int64, date time.Time, startTime string) (*domain.Slot, error)
	// Claim атомарно занимает одно место в слоте
	Claim(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	SetBillID(ctx context.Context, id int64, billID int64) error
}

// BillRepository интерфейс репозитория счетов
type BillRepository interface {
	Create(ctx context.Context, b *domain.Bill) (*domain.Bill, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
