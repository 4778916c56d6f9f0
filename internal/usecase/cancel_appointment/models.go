package cancel_appointment

import "time"

// Request модель запроса на отмену записи
type Request struct {
	AppointmentID int64 // ID записи
	UserID        int64 // ID вызывающего пользователя
	Role          Role  // Роль вызывающего (от внешнего сервиса аутентификации)
}

// Response модель ответа об отмене
type Response struct {
	AppointmentID int64     // ID отменённой записи
	Status        string    // Итоговый статус записи
	BillStatus    string    // Итоговый статус счёта
	CancelledAt   time.Time // Время отмены
}
