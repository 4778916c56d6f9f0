package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeenko/appointment-service/internal/domain"
	appointmentRepo "github.com/avdeenko/appointment-service/internal/infra/storage/appointment"
	billRepo "github.com/avdeenko/appointment-service/internal/infra/storage/bill"
	catalogClient "github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	"github.com/avdeenko/appointment-service/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	billRepo        BillRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	billRepo BillRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		billRepo:        billRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись
// или если он является менеджером поставщика услуг
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу и периоду
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByUserWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListSlots возвращает слоты услуги
// По умолчанию отдаёт только доступные слоты, опционально фильтрует по дате
func (s *Service) ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: fetching slots for service=%d, onlyAvailable=%v", req.ServiceID, req.OnlyAvailable)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	slots, err := s.slotRepo.List(ctx, domain.SlotFilter{
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		OnlyAvailable: req.OnlyAvailable,
	})
	if err != nil {
		s.logger.Error("ListSlots: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlots: successfully fetched %d slots for service=%d", len(slots), req.ServiceID)
	return models.FromDomainSlotList(slots), nil
}

// UpdateStatus обновляет статус записи (подтверждение и завершение приёма)
// Доступно только менеджерам поставщика услуг. Отмена через этот метод
// запрещена - у отмены отдельный путь с освобождением слота и аннулированием счёта
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер поставщика)
	if err := s.checkManagerAccess(ctx, appointment.ProviderID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена идёт через отдельный endpoint
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation requested via status update for appointment id=%d", appointmentID)
		return fmt.Errorf("%w: use the cancellation endpoint to cancel", ErrInvalidStatus)
	}

	// Проверяем переход по машине состояний
	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d",
			appointment.Status, newStatus, appointmentID)
		return ErrInvalidTransition
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// По завершении приёма помечаем счёт оплаченным
	if newStatus == domain.StatusCompleted {
		if err := s.settleBill(ctx, appointmentID); err != nil {
			s.logger.Error("UpdateStatus: failed to settle bill for appointment id=%d: %v", appointmentID, err)
			return fmt.Errorf("%w: UpdateStatus - failed to settle bill: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// settleBill переводит счета завершённой записи в статус paid
func (s *Service) settleBill(ctx context.Context, appointmentID int64) error {
	bills, err := s.billRepo.GetByAppointmentID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, billRepo.ErrBillNotFound) {
			// Запись без счёта - переводить нечего
			s.logger.Warn("settleBill: no bills for appointment id=%d", appointmentID)
			return nil
		}
		return err
	}

	for _, bill := range bills {
		if bill.IsSettled() {
			continue
		}
		if err := s.billRepo.UpdateStatus(ctx, bill.ID, domain.BillStatusPaid); err != nil {
			return err
		}
	}

	return nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь может видеть свою запись или если он менеджер поставщика
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи - доступ разрешён
	if appointment.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером поставщика
	if err := s.checkManagerAccess(ctx, appointment.ProviderID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером поставщика услуг
func (s *Service) checkManagerAccess(ctx context.Context, providerID int64, userID int64) error {
	// Получаем поставщика через CatalogService
	provider, err := s.catalogClient.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			s.logger.Warn("checkManagerAccess: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get provider: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	for _, managerID := range provider.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of provider=%d", userID, providerID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of provider=%d", userID, providerID)
	return ErrAccessDenied
}
