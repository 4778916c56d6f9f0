package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdeenko/appointment-service/internal/domain"
	templateRepo "github.com/avdeenko/appointment-service/internal/infra/storage/template"
	catalogClient "github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
)

// UseCase use case генерации слотов по связкам услуги
type UseCase struct {
	arrangementRepo ArrangementRepository
	templateRepo    TemplateRepository
	slotRepo        SlotRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	arrangementRepo ArrangementRepository,
	templateRepo TemplateRepository,
	slotRepo SlotRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		arrangementRepo: arrangementRepo,
		templateRepo:    templateRepo,
		slotRepo:        slotRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// Execute выполняет пакетную генерацию слотов для услуги.
// Связки с неразрешимым или некорректным шаблоном пропускаются и попадают
// в отчёт Skipped - ошибка конфигурации одной связки не фатальна для пакета.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: service=%d, duration=%d", req.ServiceID, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GenerateSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Определяем длительность слота: из запроса или из каталога
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = service.DurationMinutes
	}
	if err := validateDuration(durationMinutes); err != nil {
		uc.logger.Warn("GenerateSlots: duration validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем связки услуги в порядке sort_order
	arrangements, err := uc.arrangementRepo.GetByServiceID(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to get arrangements for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get arrangements: %v", ErrInternal, err)
	}

	// 5. Разворачиваем каждую связку, пропуская некорректные
	allSlots := make([]*domain.Slot, 0)
	skipped := make([]SkippedArrangement, 0)

	for _, arr := range arrangements {
		tpl, err := uc.templateRepo.GetByID(ctx, arr.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				uc.logger.Warn("GenerateSlots: arrangement id=%d references missing template id=%d, skipping",
					arr.ID, arr.TemplateID)
				skipped = append(skipped, SkippedArrangement{
					ArrangementID: arr.ID,
					TemplateID:    arr.TemplateID,
					Reason:        ErrTemplateNotFound.Error(),
				})
				continue
			}
			uc.logger.Error("GenerateSlots: failed to get template id=%d: %v", arr.TemplateID, err)
			return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
		}

		if err := validateTemplate(tpl); err != nil {
			uc.logger.Warn("GenerateSlots: arrangement id=%d has invalid template id=%d, skipping: %v",
				arr.ID, arr.TemplateID, err)
			skipped = append(skipped, SkippedArrangement{
				ArrangementID: arr.ID,
				TemplateID:    arr.TemplateID,
				Reason:        err.Error(),
			})
			continue
		}

		slots, err := expandArrangement(arr, tpl, durationMinutes)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to expand arrangement id=%d: %v", arr.ID, err)
			return nil, fmt.Errorf("%w: failed to expand arrangement: %v", ErrInternal, err)
		}

		allSlots = append(allSlots, slots...)
	}

	// 6. Сохраняем слоты (идемпотентно: существующие пропускаются)
	if err := uc.slotRepo.SaveBatch(ctx, allSlots); err != nil {
		uc.logger.Error("GenerateSlots: failed to save slots for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to save slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateSlots: generated %d slots for service=%d (%d arrangements skipped)",
		len(allSlots), req.ServiceID, len(skipped))

	return buildResponse(req.ServiceID, durationMinutes, allSlots, skipped), nil
}

// buildResponse конвертирует доменные слоты в ответ use case
func buildResponse(serviceID int64, durationMinutes int, slots []*domain.Slot, skipped []SkippedArrangement) *Response {
	resp := &Response{
		ServiceID:       serviceID,
		DurationMinutes: durationMinutes,
		Slots:           make([]Slot, len(slots)),
		Skipped:         skipped,
	}

	for i, s := range slots {
		resp.Slots[i] = Slot{
			ID:              s.ID,
			ArrangementID:   s.ArrangementID,
			Date:            s.Date,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			MaxAppointments: s.MaxAppointments,
			IsAvailable:     s.IsAvailable,
		}
	}

	return resp
}
