package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avdeenko/appointment-service/internal/api/handlers"
	"github.com/avdeenko/appointment-service/internal/api/middleware"
	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/internal/service/appointments"
	"github.com/avdeenko/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidFilter = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/users/{userId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Историю пользователя может смотреть только он сам
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/appointments - Access denied: user_id=%d, caller_id=%d",
			userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	// Получаем период из query параметров (опционально)
	startDate, err := parseDateParam(r, "startDate")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	endDate, err := parseDateParam(r, "endDate")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetUserAppointmentsRequest{
		UserID:    userID,
		Status:    statusPtr,
		StartDate: startDate,
		EndDate:   endDate,
	}

	// Получаем записи пользователя
	result, err := h.service.GetUserAppointments(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /users/{userId}/appointments - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /users/{userId}/appointments - Failed to get appointments: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseDateParam читает опциональный query параметр с датой
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
