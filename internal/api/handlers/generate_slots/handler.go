package generate_slots

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	generateSlots "github.com/avdeenko/appointment-service/internal/usecase/generate_slots"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidDuration    = "некорректная длительность слота"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{serviceId}/slots/generate - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Body опционален: пустое тело означает длительность из каталога
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /services/{serviceId}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		ServiceID:       serviceID,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrServiceNotFound):
			h.logger.Warn("POST /services/{serviceId}/slots/generate - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, generateSlots.ErrInvalidDuration):
			h.logger.Warn("POST /services/{serviceId}/slots/generate - Invalid duration: service_id=%d, duration=%d",
				serviceID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /services/{serviceId}/slots/generate - Invalid input: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("POST /services/{serviceId}/slots/generate - Failed to generate slots: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{serviceId}/slots/generate - Slots generated successfully: service_id=%d, slots=%d, skipped=%d",
		serviceID, len(result.Slots), len(result.Skipped))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
