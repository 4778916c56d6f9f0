package book_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/internal/domain"
	slotRepo "github.com/avdeenko/appointment-service/internal/infra/storage/slot"
	"github.com/avdeenko/appointment-service/internal/integrations/catalogservice"
	"github.com/avdeenko/appointment-service/pkg/ptr"
	"github.com/avdeenko/appointment-service/pkg/types"
)

// Фейки для зависимостей use case

// fakeSlotRepo повторяет семантику атомарного захвата: проверка вместимости
// и инкремент под одним мьютексом, как условный UPDATE в репозитории
type fakeSlotRepo struct {
	mu   sync.Mutex
	slot *domain.Slot
}

func (f *fakeSlotRepo) FindByServiceDateTime(_ context.Context, serviceID int64, date time.Time, startTime string) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.slot == nil ||
		f.slot.ServiceID != serviceID ||
		!f.slot.Date.Equal(date) ||
		f.slot.StartTime.String() != startTime {
		return nil, slotRepo.ErrSlotNotFound
	}

	copied := *f.slot
	return &copied, nil
}

func (f *fakeSlotRepo) Claim(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.slot == nil || f.slot.ID != id {
		return slotRepo.ErrSlotNotFound
	}
	if f.slot.CurrentAppointments >= f.slot.MaxAppointments {
		return slotRepo.ErrSlotNotAvailable
	}

	f.slot.CurrentAppointments++
	f.slot.IsAvailable = f.slot.CurrentAppointments < f.slot.MaxAppointments
	return nil
}

type fakeAppointmentRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Appointment
	billIDs map[int64]int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) SetBillID(_ context.Context, id int64, billID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.billIDs == nil {
		f.billIDs = make(map[int64]int64)
	}
	f.billIDs[id] = billID
	return nil
}

type fakeBillRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Bill
}

func (f *fakeBillRepo) Create(_ context.Context, b *domain.Bill) (*domain.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	b.ID = f.nextID
	f.created = append(f.created, b)
	return b, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

// fakeTxManager исполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func futureDate() time.Time {
	return time.Date(2100, 1, 15, 0, 0, 0, 0, time.UTC)
}

func testSlot(capacity int) *domain.Slot {
	return &domain.Slot{
		ID:              100,
		ServiceID:       42,
		ArrangementID:   7,
		Date:            futureDate(),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:30"),
		MaxAppointments: capacity,
		IsAvailable:     true,
	}
}

func testService() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              42,
		ProviderID:      5,
		Name:            "Консультация",
		DurationMinutes: 30,
		Price:           ptr.Ptr(1500.0),
		IsActive:        true,
	}
}

func TestBookAppointment_Success(t *testing.T) {
	slots := &fakeSlotRepo{slot: testSlot(1)}
	appointments := &fakeAppointmentRepo{}
	bills := &fakeBillRepo{}

	uc := NewUseCase(slots, appointments, bills, &fakeCatalogClient{service: testService()}, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      futureDate(),
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)

	// Запись со снимком данных услуги
	assert.Equal(t, int64(11), resp.UserID)
	assert.Equal(t, int64(5), resp.ProviderID)
	assert.Equal(t, int64(100), resp.SlotID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Консультация", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)

	// Счёт создан атомарно с записью и привязан к ней
	assert.Equal(t, 1500.0, resp.BillAmount)
	assert.Equal(t, string(domain.BillStatusPending), resp.BillStatus)
	require.Len(t, bills.created, 1)
	assert.Equal(t, resp.ID, bills.created[0].AppointmentID)
	assert.Equal(t, resp.BillID, appointments.billIDs[resp.ID])

	// Место в слоте занято
	assert.Equal(t, 1, slots.slot.CurrentAppointments)
	assert.False(t, slots.slot.IsAvailable)
}

func TestBookAppointment_NilPriceSnapshotsZero(t *testing.T) {
	service := testService()
	service.Price = nil

	uc := NewUseCase(
		&fakeSlotRepo{slot: testSlot(1)},
		&fakeAppointmentRepo{},
		&fakeBillRepo{},
		&fakeCatalogClient{service: service},
		fakeTxManager{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      futureDate(),
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.ServicePrice)
	assert.Equal(t, 0.0, resp.BillAmount)
}

func TestBookAppointment_SlotNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{slot: testSlot(1)},
		&fakeAppointmentRepo{},
		&fakeBillRepo{},
		&fakeCatalogClient{service: testService()},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      futureDate(),
		StartTime: types.TimeString("23:00"), // такого слота нет
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookAppointment_SlotFull(t *testing.T) {
	slot := testSlot(1)
	slot.CurrentAppointments = 1
	slot.IsAvailable = false

	appointments := &fakeAppointmentRepo{}
	bills := &fakeBillRepo{}
	uc := NewUseCase(
		&fakeSlotRepo{slot: slot},
		appointments,
		bills,
		&fakeCatalogClient{service: testService()},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      futureDate(),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Проигравший не оставляет следов
	assert.Empty(t, appointments.created)
	assert.Empty(t, bills.created)
}

func TestBookAppointment_PastDate(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{slot: testSlot(1)},
		&fakeAppointmentRepo{},
		&fakeBillRepo{},
		&fakeCatalogClient{service: testService()},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      time.Now().AddDate(0, 0, -1),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookAppointment_ServiceNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{slot: testSlot(1)},
		&fakeAppointmentRepo{},
		&fakeBillRepo{},
		&fakeCatalogClient{err: catalogservice.ErrServiceNotFound},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    11,
		ServiceID: 42,
		Date:      futureDate(),
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestBookAppointment_ConcurrentClaimOneWinner(t *testing.T) {
	// Вместимость 1, восемь конкурирующих бронирований:
	// побеждает ровно один, остальные получают ErrSlotNotAvailable
	slots := &fakeSlotRepo{slot: testSlot(1)}
	appointments := &fakeAppointmentRepo{}
	bills := &fakeBillRepo{}

	uc := NewUseCase(slots, appointments, bills, &fakeCatalogClient{service: testService()}, fakeTxManager{}, nopLogger{})

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{
				UserID:    userID,
				ServiceID: 42,
				Date:      futureDate(),
				StartTime: types.TimeString("10:00"),
			})
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, ErrSlotNotAvailable)
			losses++
		}
	}

	assert.Equal(t, 1, wins, "exactly one claimant must win")
	assert.Equal(t, attempts-1, losses)
	assert.Equal(t, 1, slots.slot.CurrentAppointments, "capacity counter must never exceed the limit")
	assert.Len(t, appointments.created, 1)
	assert.Len(t, bills.created, 1)
}

func TestBookAppointment_InvalidInput(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{slot: testSlot(1)},
		&fakeAppointmentRepo{},
		&fakeBillRepo{},
		&fakeCatalogClient{service: testService()},
		fakeTxManager{},
		nopLogger{},
	)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{ServiceID: 42, Date: futureDate(), StartTime: types.TimeString("10:00")}},
		{"zero service", &Request{UserID: 1, Date: futureDate(), StartTime: types.TimeString("10:00")}},
		{"zero date", &Request{UserID: 1, ServiceID: 42, StartTime: types.TimeString("10:00")}},
		{"empty time", &Request{UserID: 1, ServiceID: 42, Date: futureDate()}},
		{"malformed time", &Request{UserID: 1, ServiceID: 42, Date: futureDate(), StartTime: types.TimeString("25:99")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
