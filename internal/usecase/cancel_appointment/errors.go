package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на отмену
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrCancellationWindow возвращается, когда до начала записи осталось
	// меньше допустимого окна отмены - состояние записи не меняется
	ErrCancellationWindow = errors.New("cancel_appointment: cancellation window violated")

	// ErrCannotCancel возвращается, когда запись в финальном статусе
	ErrCannotCancel = errors.New("cancel_appointment: appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
