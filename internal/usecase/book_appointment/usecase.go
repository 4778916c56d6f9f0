package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeenko/appointment-service/internal/domain"
	slotRepo "github.com/avdeenko/appointment-service/internal/infra/storage/slot"
	catalogClient "github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

// UseCase use case создания записи на приём
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	billRepo        BillRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	billRepo BillRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		billRepo:        billRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Захват слота, создание записи и счёта выполняются в одной сериализуемой
// транзакции: либо сохраняется всё, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BookAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу из каталога (длительность, цена, провайдер)
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("BookAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var (
		resultAppointment *domain.Appointment
		resultBill        *domain.Bill
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Находим слот (строка блокируется через FOR UPDATE)
		slot, err := uc.slotRepo.FindByServiceDateTime(txCtx, req.ServiceID, req.Date, req.StartTime.String())
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookAppointment: slot not found for service=%d, date=%s, time=%s",
					req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookAppointment: failed to find slot: %v", err)
			return fmt.Errorf("%w: failed to find slot: %v", ErrInternal, err)
		}

		// 4.2. Захватываем место: проверка вместимости и инкремент атомарны.
		// Проигравший гонку вызов получает ErrSlotNotAvailable сразу.
		if err := uc.slotRepo.Claim(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("BookAppointment: slot id=%d not available, %d/%d spots taken",
					slot.ID, slot.CurrentAppointments, slot.MaxAppointments)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("BookAppointment: failed to claim slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		uc.logger.Info("BookAppointment: claimed slot id=%d (%d/%d spots taken)",
			slot.ID, slot.CurrentAppointments+1, slot.MaxAppointments)

		// 4.3. Создаем запись со снимком данных услуги
		appointment := &domain.Appointment{
			UserID:       req.UserID,
			ServiceID:    req.ServiceID,
			ProviderID:   service.ProviderID,
			SlotID:       slot.ID,
			Date:         slot.Date,
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
			Status:       domain.StatusPending,
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 4.4. Создаем счёт со снимком цены
		bill := &domain.Bill{
			AppointmentID: created.ID,
			Amount:        created.ServicePrice,
			Status:        domain.BillStatusPending,
		}

		createdBill, err := uc.billRepo.Create(txCtx, bill)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create bill for appointment id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to create bill: %v", ErrInternal, err)
		}

		// 4.5. Привязываем счёт к записи
		if err := uc.appointmentRepo.SetBillID(txCtx, created.ID, createdBill.ID); err != nil {
			uc.logger.Error("BookAppointment: failed to link bill id=%d to appointment id=%d: %v",
				createdBill.ID, created.ID, err)
			return fmt.Errorf("%w: failed to link bill: %v", ErrInternal, err)
		}
		created.BillID = createdBill.ID

		resultAppointment = created
		resultBill = createdBill
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d with bill id=%d",
		resultAppointment.ID, resultBill.ID)

	return &Response{
		ID:           resultAppointment.ID,
		UserID:       resultAppointment.UserID,
		ServiceID:    resultAppointment.ServiceID,
		ProviderID:   resultAppointment.ProviderID,
		SlotID:       resultAppointment.SlotID,
		Date:         resultAppointment.Date,
		StartTime:    resultAppointment.StartTime,
		EndTime:      resultAppointment.EndTime,
		Status:       string(resultAppointment.Status),
		ServiceName:  resultAppointment.ServiceName,
		ServicePrice: resultAppointment.ServicePrice,
		BillID:       resultBill.ID,
		BillAmount:   resultBill.Amount,
		BillStatus:   string(resultBill.Status),
		CreatedAt:    resultAppointment.CreatedAt,
		UpdatedAt:    resultAppointment.UpdatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги.
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
