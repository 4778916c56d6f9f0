package generate_slots

import (
	"time"

	"github.com/avdeenko/appointment-service/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	ServiceID       int64 // ID услуги
	DurationMinutes int   // Длительность слота в минутах (0 = взять из каталога)
}

// Response модель ответа с сгенерированными слотами
type Response struct {
	ServiceID       int64                // ID услуги
	DurationMinutes int                  // Использованная длительность
	Slots           []Slot               // Упорядоченный список слотов
	Skipped         []SkippedArrangement // Пропущенные связки (ошибки конфигурации)
}

// Slot модель сгенерированного слота
type Slot struct {
	ID              int64            // ID слота (после сохранения)
	ArrangementID   int64            // ID связки, породившей слот
	Date            time.Time        // Конкретная календарная дата
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	MaxAppointments int              // Вместимость
	IsAvailable     bool             // Доступность
}

// SkippedArrangement описывает связку, пропущенную при пакетной генерации
type SkippedArrangement struct {
	ArrangementID int64  // ID связки
	TemplateID    int64  // ID шаблона
	Reason        string // Причина пропуска (стабильное сообщение ошибки)
}
