package get_template

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/service/schedule"
)

const (
	msgInvalidTemplateID = "некорректный ID шаблона"
	msgNotFound          = "шаблон не найден"
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

// Handle GET /api/v1/templates/{templateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем templateId из URL
	vars := mux.Vars(r)
	templateIDStr := vars["templateId"]

	templateID, err := strconv.ParseInt(templateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /templates/{id} - Invalid template ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	// Получаем шаблон
	template, err := h.service.GetTemplate(r.Context(), templateID)
	if err != nil {
		if errors.Is(err, schedule.ErrTemplateNotFound) {
			h.logger.Warn("GET /templates/{id} - Template not found: template_id=%d", templateID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /templates/{id} - Failed to get template: template_id=%d, error=%v", templateID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /templates/{id} - Template retrieved successfully: template_id=%d", templateID)
	handlers.RespondJSON(w, http.StatusOK, template)
}
