package book_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("book_appointment: service not found")

	// ErrSlotNotFound возвращается, когда слот на указанные дату и время не существует
	ErrSlotNotFound = errors.New("book_appointment: slot not found")

	// ErrSlotNotAvailable возвращается, когда вместимость слота исчерпана.
	// Проигравший гонку вызов получает эту ошибку сразу, без ожидания.
	ErrSlotNotAvailable = errors.New("book_appointment: slot is not available")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("book_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
