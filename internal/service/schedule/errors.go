package schedule

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("template not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrProviderNotFound возвращается, когда поставщик услуг не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidWeekday возвращается при некорректном индексе дня недели
	ErrInvalidWeekday = errors.New("invalid weekday index")

	// ErrDuplicateWeekday возвращается, когда день недели встречается
	// в шаблоне более одного раза
	ErrDuplicateWeekday = errors.New("duplicate weekday in template")

	// ErrInvalidSegment возвращается при некорректном временном отрезке
	ErrInvalidSegment = errors.New("invalid time segment")

	// ErrOverlappingSegments возвращается, когда отрезки одного дня пересекаются
	ErrOverlappingSegments = errors.New("overlapping segments in day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
