package create_arrangements

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/api/middleware"
	"github.com/avdeenko/appointment-service/internal/service/schedule"
	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgTemplateNotFound   = "шаблон не найден"
	msgProviderNotFound   = "поставщик услуг не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные входные данные"
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

// Handle POST /api/v1/services/{serviceId}/arrangements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{serviceId}/arrangements - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services/{serviceId}/arrangements - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateArrangementsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{serviceId}/arrangements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ServiceID = serviceID
	req.UserID = userID

	// Создаём назначения (сервис сам проверит права доступа)
	result, err := h.service.CreateArrangements(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrServiceNotFound):
			h.logger.Warn("POST /services/{serviceId}/arrangements - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, schedule.ErrTemplateNotFound):
			h.logger.Warn("POST /services/{serviceId}/arrangements - Template not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("POST /services/{serviceId}/arrangements - Provider not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /services/{serviceId}/arrangements - Access denied: service_id=%d, user_id=%d",
				serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /services/{serviceId}/arrangements - Invalid input: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /services/{serviceId}/arrangements - Failed to create arrangements: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{serviceId}/arrangements - Arrangements created successfully: service_id=%d, count=%d, user_id=%d",
		serviceID, len(result.Arrangements), userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
