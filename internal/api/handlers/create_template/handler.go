package create_template

import (
	"errors"
	"net/http"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/api/middleware"
	"github.com/avdeenko/appointment-service/internal/service/schedule"
	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgProviderNotFound     = "поставщик услуг не найден"
	msgForbidden            = "доступ запрещен"
	msgInvalidWeekday       = "некорректный индекс дня недели, ожидается 0-6"
	msgDuplicateWeekday     = "день недели указан в шаблоне более одного раза"
	msgInvalidSegment       = "некорректный временной отрезок"
	msgOverlappingSegments  = "временные отрезки дня пересекаются"
	msgInvalidInput         = "некорректные входные данные"
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

// Handle POST /api/v1/templates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /templates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateTemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	// Создаём шаблон (сервис сам проверит права доступа и валидность)
	result, err := h.service.CreateTemplate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("POST /templates - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /templates - Access denied: provider_id=%d, user_id=%d", req.ProviderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidWeekday):
			h.logger.Warn("POST /templates - Invalid weekday: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrDuplicateWeekday):
			h.logger.Warn("POST /templates - Duplicate weekday: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgDuplicateWeekday)

		case errors.Is(err, schedule.ErrInvalidSegment):
			h.logger.Warn("POST /templates - Invalid segment: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidSegment)

		case errors.Is(err, schedule.ErrOverlappingSegments):
			h.logger.Warn("POST /templates - Overlapping segments: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgOverlappingSegments)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /templates - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /templates - Failed to create template: provider_id=%d, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /templates - Template created successfully: template_id=%d, provider_id=%d, user_id=%d",
		result.ID, req.ProviderID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
