package book_appointment

import (
	"time"

	"github.com/avdeenko/appointment-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID    int64            // ID пользователя (из заголовка аутентификации)
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64            // ID созданной записи
	UserID     int64            // ID пользователя
	ServiceID  int64            // ID услуги
	ProviderID int64            // ID провайдера
	SlotID     int64            // ID занятого слота
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	Status     string           // Статус записи

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги (снимок)

	// Связанный счёт
	BillID     int64   // ID счёта
	BillAmount float64 // Сумма счёта
	BillStatus string  // Статус счёта

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
