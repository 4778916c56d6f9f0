package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/internal/domain"
	templateRepo "github.com/avdeenko/appointment-service/internal/infra/storage/template"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	"github.com/avdeenko/appointment-service/internal/service/schedule/models"
)

// Фейки для зависимостей сервиса

type fakeTemplateRepo struct {
	templates map[int64]*domain.Template
	nextID    int64
}

func (f *fakeTemplateRepo) Create(_ context.Context, tpl *domain.Template) (*domain.Template, error) {
	f.nextID++
	tpl.ID = f.nextID
	if f.templates == nil {
		f.templates = make(map[int64]*domain.Template)
	}
	f.templates[tpl.ID] = tpl
	return tpl, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*domain.Template, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, templateRepo.ErrTemplateNotFound
	}
	return tpl, nil
}

func (f *fakeTemplateRepo) ListByProvider(_ context.Context, providerID int64) ([]*domain.Template, error) {
	var out []*domain.Template
	for _, tpl := range f.templates {
		if tpl.ProviderID == providerID {
			out = append(out, tpl)
		}
	}
	return out, nil
}

type fakeArrangementRepo struct {
	created []*domain.Arrangement
}

func (f *fakeArrangementRepo) CreateBatch(_ context.Context, arrs []*domain.Arrangement) ([]*domain.Arrangement, error) {
	for i, arr := range arrs {
		arr.ID = int64(i + 1)
	}
	f.created = append(f.created, arrs...)
	return arrs, nil
}

func (f *fakeArrangementRepo) GetByServiceID(_ context.Context, serviceID int64) ([]*domain.Arrangement, error) {
	var out []*domain.Arrangement
	for _, arr := range f.created {
		if arr.ServiceID == serviceID {
			out = append(out, arr)
		}
	}
	return out, nil
}

type fakeCatalogClient struct {
	service  *catalogservice.Service
	provider *catalogservice.Provider
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if f.service == nil {
		return nil, catalogservice.ErrServiceNotFound
	}
	return f.service, nil
}

func (f *fakeCatalogClient) GetProvider(_ context.Context, _ int64) (*catalogservice.Provider, error) {
	if f.provider == nil {
		return nil, catalogservice.ErrProviderNotFound
	}
	return f.provider, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProvider() *catalogservice.Provider {
	return &catalogservice.Provider{ID: 5, Name: "Клиника", ManagerIDs: []int64{10}}
}

func newTestService(tpls *fakeTemplateRepo, arrs *fakeArrangementRepo, catalog *fakeCatalogClient) *Service {
	return NewService(tpls, arrs, catalog, fakeTxManager{}, nopLogger{})
}

func validTemplateRequest() *models.CreateTemplateRequest {
	return &models.CreateTemplateRequest{
		UserID:     10,
		ProviderID: 5,
		Name:       "Будни",
		Days: []models.DayInput{
			{
				Weekday:     1,
				IsAvailable: true,
				Segments: []models.SegmentInput{
					{StartTime: "09:00", EndTime: "13:00"},
					{StartTime: "14:00", EndTime: "18:00"},
				},
			},
			{Weekday: 0, IsAvailable: false},
		},
	}
}

func TestCreateTemplate_Success(t *testing.T) {
	tpls := &fakeTemplateRepo{}
	svc := newTestService(tpls, &fakeArrangementRepo{}, &fakeCatalogClient{provider: testProvider()})

	resp, err := svc.CreateTemplate(context.Background(), validTemplateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(5), resp.ProviderID)
	assert.Equal(t, "Будни", resp.Name)
	require.Len(t, resp.Days, 2)
	assert.Len(t, resp.Days[0].Segments, 2)
}

func TestCreateTemplate_NotAManager(t *testing.T) {
	catalog := &fakeCatalogClient{provider: testProvider()}
	svc := newTestService(&fakeTemplateRepo{}, &fakeArrangementRepo{}, catalog)

	req := validTemplateRequest()
	req.UserID = 99

	_, err := svc.CreateTemplate(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateTemplate_ProviderNotFound(t *testing.T) {
	svc := newTestService(&fakeTemplateRepo{}, &fakeArrangementRepo{}, &fakeCatalogClient{})

	_, err := svc.CreateTemplate(context.Background(), validTemplateRequest())
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestCreateTemplate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *models.CreateTemplateRequest)
		wantErr error
	}{
		{
			"empty name",
			func(req *models.CreateTemplateRequest) { req.Name = "" },
			ErrInvalidInput,
		},
		{
			"no days",
			func(req *models.CreateTemplateRequest) { req.Days = nil },
			ErrInvalidInput,
		},
		{
			"weekday out of range",
			func(req *models.CreateTemplateRequest) { req.Days[0].Weekday = 7 },
			ErrInvalidWeekday,
		},
		{
			"negative weekday",
			func(req *models.CreateTemplateRequest) { req.Days[0].Weekday = -1 },
			ErrInvalidWeekday,
		},
		{
			"duplicate weekday",
			func(req *models.CreateTemplateRequest) { req.Days[1].Weekday = 1 },
			ErrDuplicateWeekday,
		},
		{
			"available day without segments",
			func(req *models.CreateTemplateRequest) { req.Days[0].Segments = nil },
			ErrInvalidInput,
		},
		{
			"reversed segment bounds",
			func(req *models.CreateTemplateRequest) {
				req.Days[0].Segments[0] = models.SegmentInput{StartTime: "13:00", EndTime: "09:00"}
			},
			ErrInvalidSegment,
		},
		{
			"malformed segment time",
			func(req *models.CreateTemplateRequest) {
				req.Days[0].Segments[0].StartTime = "9:00"
			},
			ErrInvalidSegment,
		},
		{
			"overlapping segments",
			func(req *models.CreateTemplateRequest) {
				req.Days[0].Segments = []models.SegmentInput{
					{StartTime: "09:00", EndTime: "13:00"},
					{StartTime: "12:00", EndTime: "15:00"},
				}
			},
			ErrOverlappingSegments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeTemplateRepo{}, &fakeArrangementRepo{}, &fakeCatalogClient{provider: testProvider()})

			req := validTemplateRequest()
			tt.mutate(req)

			_, err := svc.CreateTemplate(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTemplate_TouchingSegmentsAllowed(t *testing.T) {
	svc := newTestService(&fakeTemplateRepo{}, &fakeArrangementRepo{}, &fakeCatalogClient{provider: testProvider()})

	req := validTemplateRequest()
	req.Days[0].Segments = []models.SegmentInput{
		{StartTime: "09:00", EndTime: "13:00"},
		{StartTime: "13:00", EndTime: "17:00"},
	}

	_, err := svc.CreateTemplate(context.Background(), req)
	assert.NoError(t, err)
}

func TestGetTemplate(t *testing.T) {
	tpls := &fakeTemplateRepo{templates: map[int64]*domain.Template{
		3: {ID: 3, ProviderID: 5, Name: "Будни"},
	}}
	svc := newTestService(tpls, &fakeArrangementRepo{}, &fakeCatalogClient{})

	resp, err := svc.GetTemplate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Будни", resp.Name)

	_, err = svc.GetTemplate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateArrangements_Success(t *testing.T) {
	tpls := &fakeTemplateRepo{templates: map[int64]*domain.Template{
		3: {ID: 3, ProviderID: 5},
	}}
	arrs := &fakeArrangementRepo{}
	catalog := &fakeCatalogClient{
		service:  &catalogservice.Service{ID: 42, ProviderID: 5},
		provider: testProvider(),
	}
	svc := newTestService(tpls, arrs, catalog)

	resp, err := svc.CreateArrangements(context.Background(), &models.CreateArrangementsRequest{
		UserID:    10,
		ServiceID: 42,
		Arrangements: []models.ArrangementInput{
			{TemplateID: 3, StartDate: "2026-03-16", SortOrder: 1},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Arrangements, 1)
	assert.Equal(t, int64(42), resp.Arrangements[0].ServiceID)
	assert.Equal(t, int64(3), resp.Arrangements[0].TemplateID)
	assert.Equal(t, "2026-03-16", resp.Arrangements[0].StartDate)
	assert.Len(t, arrs.created, 1)
}

func TestCreateArrangements_ForeignTemplateDenied(t *testing.T) {
	// Шаблон принадлежит другому поставщику
	tpls := &fakeTemplateRepo{templates: map[int64]*domain.Template{
		3: {ID: 3, ProviderID: 777},
	}}
	catalog := &fakeCatalogClient{
		service:  &catalogservice.Service{ID: 42, ProviderID: 5},
		provider: testProvider(),
	}
	svc := newTestService(tpls, &fakeArrangementRepo{}, catalog)

	_, err := svc.CreateArrangements(context.Background(), &models.CreateArrangementsRequest{
		UserID:    10,
		ServiceID: 42,
		Arrangements: []models.ArrangementInput{
			{TemplateID: 3, StartDate: "2026-03-16"},
		},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateArrangements_InvalidInput(t *testing.T) {
	tpls := &fakeTemplateRepo{templates: map[int64]*domain.Template{
		3: {ID: 3, ProviderID: 5},
	}}
	catalog := &fakeCatalogClient{
		service:  &catalogservice.Service{ID: 42, ProviderID: 5},
		provider: testProvider(),
	}
	svc := newTestService(tpls, &fakeArrangementRepo{}, catalog)

	tests := []struct {
		name    string
		req     *models.CreateArrangementsRequest
		wantErr error
	}{
		{
			"empty list",
			&models.CreateArrangementsRequest{UserID: 10, ServiceID: 42},
			ErrInvalidInput,
		},
		{
			"zero template id",
			&models.CreateArrangementsRequest{
				UserID: 10, ServiceID: 42,
				Arrangements: []models.ArrangementInput{{StartDate: "2026-03-16"}},
			},
			ErrInvalidInput,
		},
		{
			"malformed date",
			&models.CreateArrangementsRequest{
				UserID: 10, ServiceID: 42,
				Arrangements: []models.ArrangementInput{{TemplateID: 3, StartDate: "16.03.2026"}},
			},
			ErrInvalidInput,
		},
		{
			"missing template",
			&models.CreateArrangementsRequest{
				UserID: 10, ServiceID: 42,
				Arrangements: []models.ArrangementInput{{TemplateID: 404, StartDate: "2026-03-16"}},
			},
			ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateArrangements(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateArrangements_ServiceNotFound(t *testing.T) {
	svc := newTestService(&fakeTemplateRepo{}, &fakeArrangementRepo{}, &fakeCatalogClient{provider: testProvider()})

	_, err := svc.CreateArrangements(context.Background(), &models.CreateArrangementsRequest{
		UserID:    10,
		ServiceID: 42,
		Arrangements: []models.ArrangementInput{
			{TemplateID: 3, StartDate: "2026-03-16"},
		},
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
