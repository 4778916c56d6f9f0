package generate_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("generate_slots: service not found")

	// ErrTemplateNotFound возвращается, когда шаблон связки не удалось разрешить.
	// Для пакетной генерации это не фатально - связка пропускается.
	ErrTemplateNotFound = errors.New("generate_slots: template not found")

	// ErrInvalidTemplate возвращается при некорректном шаблоне
	// (сегмент с start >= end или пересекающиеся сегменты дня)
	ErrInvalidTemplate = errors.New("generate_slots: invalid template")

	// ErrInvalidDuration возвращается при недопустимой длительности слота
	ErrInvalidDuration = errors.New("generate_slots: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
