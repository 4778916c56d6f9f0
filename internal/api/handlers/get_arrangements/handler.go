package get_arrangements

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/service/schedule"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/arrangements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{serviceId}/arrangements - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Получаем назначения услуги в порядке применения
	result, err := h.service.GetServiceArrangements(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /services/{serviceId}/arrangements - Invalid input: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /services/{serviceId}/arrangements - Failed to get arrangements: service_id=%d, error=%v",
			serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{serviceId}/arrangements - Arrangements retrieved successfully: service_id=%d, count=%d",
		serviceID, len(result.Arrangements))
	handlers.RespondJSON(w, http.StatusOK, result)
}
