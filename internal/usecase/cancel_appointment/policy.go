package cancel_appointment

import (
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
)

// cancellationNotice минимальный срок до начала записи, при котором отмена разрешена
const cancellationNotice = domain.CancellationNoticeHours * time.Hour

// PolicyAllows чистая функция политики отмены: отмена разрешена, только пока
// до начала записи остаётся не меньше окна уведомления.
// Граница включительно: ровно за 24 часа отмена ещё разрешена.
func PolicyAllows(appointmentStart, now time.Time) bool {
	return appointmentStart.Sub(now) >= cancellationNotice
}

// Role роль вызывающего, полученная от внешнего сервиса аутентификации.
// Ядро не проверяет учётные данные - только авторизует по роли и владению.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// IsElevated возвращает true для ролей, которым разрешены операции
// над чужими записями.
func (r Role) IsElevated() bool {
	return r == RoleManager || r == RoleAdmin
}

// canCancel предикат авторизации: отменить запись может владелец
// или вызывающий с повышенной ролью.
func canCancel(role Role, appointmentUserID, callerID int64) bool {
	if appointmentUserID == callerID {
		return true
	}
	return role.IsElevated()
}
