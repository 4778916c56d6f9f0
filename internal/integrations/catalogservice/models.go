package catalogservice

// Service модель услуги из каталога.
// Длительность и базовая цена приходят из каталога; ядро бронирования
// хранит их снимок на момент записи.
type Service struct {
	ID              int64    `json:"id"`
	ProviderID      int64    `json:"provider_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"is_active"`
}

// Provider модель провайдера из каталога
type Provider struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
