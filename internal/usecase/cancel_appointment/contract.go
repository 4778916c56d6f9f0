package cancel_appointment

import (
	"context"
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByID получает запись (внутри транзакции строка блокируется через FOR UPDATE)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// Cancel переводит запись в статус cancelled
	Cancel(ctx context.Context, id int64) error
}

// BillRepository интерфейс репозитория счетов
type BillRepository interface {
	// CancelByAppointmentID аннулирует все счета записи
	CancelByAppointmentID(ctx context.Context, appointmentID int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// Release освобождает одно место в слоте
	Release(ctx context.Context, id int64) error
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
