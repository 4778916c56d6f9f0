package list_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/internal/service/appointments"
	"github.com/avdeenko/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{serviceId}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Получаем date из query параметров (опционально)
	var datePtr *time.Time
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /services/{serviceId}/slots - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		datePtr = &date
	}

	// По умолчанию отдаём только доступные слоты
	onlyAvailable := r.URL.Query().Get("all") != "true"

	// Получаем слоты
	result, err := h.service.ListSlots(r.Context(), &models.ListSlotsRequest{
		ServiceID:     serviceID,
		Date:          datePtr,
		OnlyAvailable: onlyAvailable,
	})
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /services/{serviceId}/slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		h.logger.Error("GET /services/{serviceId}/slots - Failed to list slots: service_id=%d, error=%v",
			serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{serviceId}/slots - Slots retrieved successfully: service_id=%d, count=%d",
		serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
