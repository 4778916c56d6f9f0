package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/internal/domain"
	appointmentRepo "github.com/avdeenko/appointment-service/internal/infra/storage/appointment"
	billRepo "github.com/avdeenko/appointment-service/internal/infra/storage/bill"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	"github.com/avdeenko/appointment-service/internal/service/appointments/models"
)

// Фейки для зависимостей сервиса

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByUserWithFilter(_ context.Context, filter domain.UserAppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.appointments {
		if appt.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, slot := range f.slots {
		if slot.ServiceID != filter.ServiceID {
			continue
		}
		if filter.OnlyAvailable && !slot.HasCapacity() {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

type fakeBillRepo struct {
	bills   map[int64][]*domain.Bill // по appointmentID
	updated map[int64]domain.BillStatus
}

func (f *fakeBillRepo) GetByAppointmentID(_ context.Context, appointmentID int64) ([]*domain.Bill, error) {
	bills, ok := f.bills[appointmentID]
	if !ok {
		return nil, billRepo.ErrBillNotFound
	}
	return bills, nil
}

func (f *fakeBillRepo) UpdateStatus(_ context.Context, id int64, status domain.BillStatus) error {
	if f.updated == nil {
		f.updated = make(map[int64]domain.BillStatus)
	}
	f.updated[id] = status
	return nil
}

type fakeCatalogClient struct {
	provider *catalogservice.Provider
}

func (f *fakeCatalogClient) GetProvider(_ context.Context, _ int64) (*catalogservice.Provider, error) {
	if f.provider == nil {
		return nil, catalogservice.ErrProviderNotFound
	}
	return f.provider, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProvider() *catalogservice.Provider {
	return &catalogservice.Provider{ID: 5, Name: "Клиника", ManagerIDs: []int64{10}}
}

func newTestService(appts *fakeAppointmentRepo, slots *fakeSlotRepo, bills *fakeBillRepo, catalog *fakeCatalogClient) *Service {
	return NewService(appts, slots, bills, catalog, nopLogger{})
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         1,
		UserID:     7,
		ServiceID:  42,
		ProviderID: 5,
		SlotID:     100,
		Status:     status,
		BillID:     500,
	}
}

func TestGetByID_Owner(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{})

	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
}

func TestGetByID_Manager(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	_, err := svc.GetByID(context.Background(), 1, 10)
	assert.NoError(t, err)
}

func TestGetByID_ForeignUserDenied(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	_, err := svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(
		&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}},
		&fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{},
	)

	_, err := svc.GetByID(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointments_StatusFilter(t *testing.T) {
	pending := testAppointment(domain.StatusPending)
	completed := testAppointment(domain.StatusCompleted)
	completed.ID = 2

	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: pending, 2: completed}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{})

	status := "completed"
	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: 7,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)
}

func TestGetUserAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(
		&fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}},
		&fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{},
	)

	status := "unknown"
	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: 7,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListSlots_OnlyAvailable(t *testing.T) {
	slots := &fakeSlotRepo{slots: []*domain.Slot{
		{ID: 1, ServiceID: 42, MaxAppointments: 1, CurrentAppointments: 0},
		{ID: 2, ServiceID: 42, MaxAppointments: 1, CurrentAppointments: 1},
	}}
	svc := newTestService(&fakeAppointmentRepo{}, slots, &fakeBillRepo{}, &fakeCatalogClient{})

	resp, err := svc.ListSlots(context.Background(), &models.ListSlotsRequest{ServiceID: 42, OnlyAvailable: true})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(1), resp.Slots[0].ID)

	resp, err = svc.ListSlots(context.Background(), &models.ListSlotsRequest{ServiceID: 42})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestUpdateStatus_ConfirmByManager(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, appts.appointments[1].Status)
}

func TestUpdateStatus_NotAManager(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	// Владелец записи не менеджер - смена статуса недоступна
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 7, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_CancellationRejected(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	// Отмена идёт через отдельный endpoint с освобождением слота
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, domain.StatusPending, appts.appointments[1].Status)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.AppointmentStatus
		to     string
	}{
		{"pending to completed", domain.StatusPending, "completed"},
		{"completed to confirmed", domain.StatusCompleted, "confirmed"},
		{"cancelled to confirmed", domain.StatusCancelled, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(tt.from)}}
			svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: tt.to})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusPending)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CompletionSettlesBills(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusConfirmed)}}
	bills := &fakeBillRepo{bills: map[int64][]*domain.Bill{
		1: {
			{ID: 500, AppointmentID: 1, Status: domain.BillStatusPending},
			{ID: 501, AppointmentID: 1, Status: domain.BillStatusCancelled}, // уже финальный
		},
	}}
	svc := newTestService(appts, &fakeSlotRepo{}, bills, &fakeCatalogClient{provider: testProvider()})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, appts.appointments[1].Status)
	assert.Equal(t, domain.BillStatusPaid, bills.updated[500])
	_, touched := bills.updated[501]
	assert.False(t, touched, "settled bills must not be updated")
}

func TestUpdateStatus_CompletionWithoutBills(t *testing.T) {
	appts := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{1: testAppointment(domain.StatusConfirmed)}}
	svc := newTestService(appts, &fakeSlotRepo{}, &fakeBillRepo{}, &fakeCatalogClient{provider: testProvider()})

	// Запись без счёта завершается без ошибки
	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})
	assert.NoError(t, err)
}
