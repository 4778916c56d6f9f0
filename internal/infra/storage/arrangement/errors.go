package arrangement

import "errors"

var (
	// ErrArrangementNotFound возвращается, когда связка услуга-шаблон не найдена
	ErrArrangementNotFound = errors.New("arrangement.repository: arrangement not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("arrangement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("arrangement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("arrangement.repository: failed to scan row")
)
