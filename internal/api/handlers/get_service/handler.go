package get_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgNotFound         = "услуга не найдена"
)

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64    `json:"id"`
	ProviderID      int64    `json:"providerId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"isActive"`
}

type Handler struct {
	catalogClient CatalogServiceClient
	logger        Logger
}

func NewHandler(catalogClient CatalogServiceClient, logger Logger) *Handler {
	return &Handler{
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Handle GET /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Запрашиваем услугу в каталоге
	service, err := h.catalogClient.GetService(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{serviceId} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /services/{serviceId} - Failed to get service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{serviceId} - Service retrieved successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, &ServiceResponse{
		ID:              service.ID,
		ProviderID:      service.ProviderID,
		Name:            service.Name,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		IsActive:        service.IsActive,
	})
}
