package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
	templateRepo "github.com/avdeenko/appointment-service/internal/infra/storage/template"
	catalogClient "github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

// Service сервис для управления расписаниями поставщиков услуг
type Service struct {
	templateRepo    TemplateRepository
	arrangementRepo ArrangementRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	templateRepo TemplateRepository,
	arrangementRepo ArrangementRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		templateRepo:    templateRepo,
		arrangementRepo: arrangementRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// CreateTemplate создает шаблон расписания
// Доступно только менеджерам поставщика услуг
func (s *Service) CreateTemplate(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("CreateTemplate: creating template %q for provider=%d by user=%d",
		req.Name, req.ProviderID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	tpl := req.ToDomain()

	// Валидируем структуру шаблона
	if err := s.validateTemplate(tpl); err != nil {
		s.logger.Warn("CreateTemplate: invalid template %q for provider=%d: %v", req.Name, req.ProviderID, err)
		return nil, err
	}

	// Создаём шаблон вместе с днями и отрезками в одной транзакции
	var created *domain.Template
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.templateRepo.Create(txCtx, tpl)
		return err
	})
	if err != nil {
		s.logger.Error("CreateTemplate: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: CreateTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTemplate: successfully created template id=%d for provider=%d",
		created.ID, req.ProviderID)
	return models.FromDomainTemplate(created), nil
}

// GetTemplate получает шаблон по ID
func (s *Service) GetTemplate(ctx context.Context, id int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetTemplate: fetching template id=%d", id)

	tpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetTemplate: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetTemplate: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTemplate: successfully fetched template id=%d", id)
	return models.FromDomainTemplate(tpl), nil
}

// ListTemplates получает шаблоны поставщика услуг
func (s *Service) ListTemplates(ctx context.Context, providerID int64) (*models.TemplateListResponse, error) {
	s.logger.Info("ListTemplates: fetching templates for provider=%d", providerID)

	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	templates, err := s.templateRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListTemplates: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListTemplates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListTemplates: successfully fetched %d templates for provider=%d", len(templates), providerID)
	return models.FromDomainTemplateList(templates), nil
}

// CreateArrangements назначает шаблоны услуге
// Каждое назначение привязывает шаблон к якорной дате, от которой
// раскрываются календарные слоты. Доступно только менеджерам поставщика
func (s *Service) CreateArrangements(ctx context.Context, req *models.CreateArrangementsRequest) (*models.ArrangementListResponse, error) {
	s.logger.Info("CreateArrangements: creating %d arrangements for service=%d by user=%d",
		len(req.Arrangements), req.ServiceID, req.UserID)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if len(req.Arrangements) == 0 {
		return nil, fmt.Errorf("%w: arrangements list is empty", ErrInvalidInput)
	}

	// Получаем услугу, чтобы узнать поставщика
	service, err := s.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("CreateArrangements: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateArrangements: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateArrangements - failed to get service: %v", ErrInternal, err)
	}

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, service.ProviderID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем и валидируем входные назначения
	arrs := make([]*domain.Arrangement, 0, len(req.Arrangements))
	for i, input := range req.Arrangements {
		if input.TemplateID <= 0 {
			return nil, fmt.Errorf("%w: arrangement %d: templateID must be positive", ErrInvalidInput, i)
		}

		startDate, err := time.Parse(domain.DateFormat, input.StartDate)
		if err != nil {
			s.logger.Warn("CreateArrangements: invalid start date %q in arrangement %d", input.StartDate, i)
			return nil, fmt.Errorf("%w: arrangement %d: invalid start date %q", ErrInvalidInput, i, input.StartDate)
		}

		// Проверяем, что шаблон существует и принадлежит тому же поставщику
		tpl, err := s.templateRepo.GetByID(ctx, input.TemplateID)
		if err != nil {
			if errors.Is(err, templateRepo.ErrTemplateNotFound) {
				s.logger.Warn("CreateArrangements: template id=%d not found", input.TemplateID)
				return nil, ErrTemplateNotFound
			}
			s.logger.Error("CreateArrangements: repository error for template id=%d: %v", input.TemplateID, err)
			return nil, fmt.Errorf("%w: CreateArrangements - repository error: %v", ErrInternal, err)
		}
		if tpl.ProviderID != service.ProviderID {
			s.logger.Warn("CreateArrangements: template id=%d belongs to provider=%d, not provider=%d",
				input.TemplateID, tpl.ProviderID, service.ProviderID)
			return nil, ErrAccessDenied
		}

		arrs = append(arrs, &domain.Arrangement{
			ServiceID:  req.ServiceID,
			TemplateID: input.TemplateID,
			StartDate:  startDate,
			SortOrder:  input.SortOrder,
		})
	}

	// Создаём назначения в одной транзакции
	var created []*domain.Arrangement
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.arrangementRepo.CreateBatch(txCtx, arrs)
		return err
	})
	if err != nil {
		s.logger.Error("CreateArrangements: repository error for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateArrangements - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateArrangements: successfully created %d arrangements for service=%d",
		len(created), req.ServiceID)
	return models.FromDomainArrangementList(created), nil
}

// GetServiceArrangements получает назначения услуги в порядке применения
func (s *Service) GetServiceArrangements(ctx context.Context, serviceID int64) (*models.ArrangementListResponse, error) {
	s.logger.Info("GetServiceArrangements: fetching arrangements for service=%d", serviceID)

	if serviceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	arrs, err := s.arrangementRepo.GetByServiceID(ctx, serviceID)
	if err != nil {
		s.logger.Error("GetServiceArrangements: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetServiceArrangements - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetServiceArrangements: successfully fetched %d arrangements for service=%d",
		len(arrs), serviceID)
	return models.FromDomainArrangementList(arrs), nil
}

// Вспомогательные методы

// validateTemplate валидирует структуру шаблона: имя, уникальность дней
// недели, корректность и непересечение отрезков
func (s *Service) validateTemplate(tpl *domain.Template) error {
	if tpl.Name == "" {
		return fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}
	if len(tpl.Name) > domain.MaxTemplateNameLength {
		return fmt.Errorf("%w: template name exceeds %d characters", ErrInvalidInput, domain.MaxTemplateNameLength)
	}
	if len(tpl.Days) == 0 {
		return fmt.Errorf("%w: template must have at least one day", ErrInvalidInput)
	}
	if len(tpl.Days) > domain.MaxTemplateDays {
		return fmt.Errorf("%w: template cannot have more than %d days", ErrInvalidInput, domain.MaxTemplateDays)
	}

	seenWeekdays := make(map[int]bool, len(tpl.Days))
	for _, day := range tpl.Days {
		if day.Weekday < domain.MinWeekdayIndex || day.Weekday > domain.MaxWeekdayIndex {
			return fmt.Errorf("%w: weekday %d is out of range [%d, %d]",
				ErrInvalidWeekday, day.Weekday, domain.MinWeekdayIndex, domain.MaxWeekdayIndex)
		}
		if seenWeekdays[day.Weekday] {
			return fmt.Errorf("%w: weekday %d", ErrDuplicateWeekday, day.Weekday)
		}
		seenWeekdays[day.Weekday] = true

		if day.IsAvailable && len(day.Segments) == 0 {
			return fmt.Errorf("%w: available day %d has no segments", ErrInvalidInput, day.Weekday)
		}

		for i := range day.Segments {
			seg := &day.Segments[i]
			if err := seg.StartTime.Validate(); err != nil {
				return fmt.Errorf("%w: weekday %d: invalid start time %q", ErrInvalidSegment, day.Weekday, seg.StartTime)
			}
			if err := seg.EndTime.Validate(); err != nil {
				return fmt.Errorf("%w: weekday %d: invalid end time %q", ErrInvalidSegment, day.Weekday, seg.EndTime)
			}
			if !seg.IsValid() {
				return fmt.Errorf("%w: weekday %d: segment %s-%s", ErrInvalidSegment, day.Weekday, seg.StartTime, seg.EndTime)
			}

			for j := i + 1; j < len(day.Segments); j++ {
				if seg.Overlaps(&day.Segments[j]) {
					return fmt.Errorf("%w: weekday %d: %s-%s and %s-%s",
						ErrOverlappingSegments, day.Weekday,
						seg.StartTime, seg.EndTime,
						day.Segments[j].StartTime, day.Segments[j].EndTime)
				}
			}
		}
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером поставщика услуг
func (s *Service) checkManagerAccess(ctx context.Context, providerID int64, userID int64) error {
	provider, err := s.catalogClient.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			s.logger.Warn("checkManagerAccess: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get provider id=%d: %v", providerID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get provider: %v", ErrInternal, err)
	}

	for _, managerID := range provider.ManagerIDs {
		if managerID == userID {
			s.logger.Info("checkManagerAccess: user=%d is manager of provider=%d", userID, providerID)
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of provider=%d", userID, providerID)
	return ErrAccessDenied
}
