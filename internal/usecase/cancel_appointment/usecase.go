package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeenko/appointment-service/internal/domain"
	appointmentRepo "github.com/avdeenko/appointment-service/internal/infra/storage/appointment"
)

// UseCase use case отмены записи на приём
type UseCase struct {
	appointmentRepo AppointmentRepository
	billRepo        BillRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	billRepo BillRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		billRepo:        billRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи.
// Смена статуса записи, аннулирование счетов и освобождение слота
// выполняются в одной транзакции: частичная отмена невозможна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: appointment=%d, user=%d, role=%s",
		req.AppointmentID, req.UserID, req.Role)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 2. Выполняем проверку и отмену в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Авторизация: владелец или повышенная роль
		if !canCancel(req.Role, appointment.UserID, req.UserID) {
			uc.logger.Warn("CancelAppointment: access denied for user=%d to appointment id=%d",
				req.UserID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 2.3. Проверяем, что запись ещё можно отменить
		if !appointment.CanBeCancelled() {
			uc.logger.Warn("CancelAppointment: appointment id=%d cannot be cancelled, status=%s",
				req.AppointmentID, appointment.Status)
			return ErrCannotCancel
		}

		// 2.4. Политика отмены: не позже чем за 24 часа до начала.
		// При нарушении окна запись остаётся без изменений.
		startsAt, err := appointment.StartsAt()
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to compute start time for appointment id=%d: %v",
				req.AppointmentID, err)
			return fmt.Errorf("%w: failed to compute start time: %v", ErrInternal, err)
		}

		if !PolicyAllows(startsAt, now) {
			uc.logger.Warn("CancelAppointment: cancellation window violated for appointment id=%d (starts %s)",
				req.AppointmentID, startsAt.Format("2006-01-02 15:04"))
			return ErrCancellationWindow
		}

		// 2.5. Отменяем запись
		if err := uc.appointmentRepo.Cancel(txCtx, req.AppointmentID); err != nil {
			uc.logger.Error("CancelAppointment: failed to cancel appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		// 2.6. Аннулируем счета записи
		if err := uc.billRepo.CancelByAppointmentID(txCtx, req.AppointmentID); err != nil {
			uc.logger.Error("CancelAppointment: failed to cancel bills for appointment id=%d: %v",
				req.AppointmentID, err)
			return fmt.Errorf("%w: failed to cancel bills: %v", ErrInternal, err)
		}

		// 2.7. Освобождаем место в слоте
		if err := uc.slotRepo.Release(txCtx, appointment.SlotID); err != nil {
			uc.logger.Error("CancelAppointment: failed to release slot id=%d: %v", appointment.SlotID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		result = appointment
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelAppointment: successfully cancelled appointment id=%d, released slot id=%d",
		req.AppointmentID, result.SlotID)

	return &Response{
		AppointmentID: req.AppointmentID,
		Status:        string(domain.StatusCancelled),
		BillStatus:    string(domain.BillStatusCancelled),
		CancelledAt:   now,
	}, nil
}
