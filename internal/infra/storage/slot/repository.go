package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/pkg/dbmetrics"
	"github.com/avdeenko/appointment-service/pkg/psqlbuilder"
)

const slotColumns = "id, service_id, arrangement_id, slot_date, start_time, end_time, " +
	"max_appointments, current_appointments, is_available, created_at, updated_at"

// Repository репозиторий для работы со слотами.
// Счётчик current_appointments - единственный разделяемый изменяемый ресурс
// пути бронирования, поэтому Claim/Release выполняются условными UPDATE.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// SaveBatch сохраняет сгенерированные слоты.
// Повторная генерация идемпотентна: уже существующие слоты
// (service_id, slot_date, start_time) пропускаются через ON CONFLICT DO NOTHING,
// чтобы не затирать занятую вместимость.
func (r *Repository) SaveBatch(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns(
			"service_id",
			"arrangement_id",
			"slot_date",
			"start_time",
			"end_time",
			"max_appointments",
			"current_appointments",
			"is_available",
		)

	for _, s := range slots {
		builder = builder.Values(
			s.ServiceID,
			s.ArrangementID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.MaxAppointments,
			s.CurrentAppointments,
			s.IsAvailable,
		)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (service_id, slot_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// FindByServiceDateTime находит слот услуги по дате и времени начала.
// Внутри транзакции блокирует строку через FOR UPDATE - используется
// usecase бронирования перед захватом вместимости.
func (r *Repository) FindByServiceDateTime(ctx context.Context, serviceID int64, date time.Time, startTime string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{
			"service_id": serviceID,
			"slot_date":  date,
			"start_time": startTime,
		})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByServiceDateTime - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByServiceDateTime - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты по фильтру
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns).
		From("slots").
		Where(squirrel.Eq{"service_id": filter.ServiceID}).
		OrderBy("slot_date ASC, start_time ASC")

	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if filter.OnlyAvailable {
		builder = builder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Claim атомарно занимает одно место в слоте.
// Проверка вместимости и инкремент выполняются одним условным UPDATE:
// два конкурирующих вызова на последнее место не могут пройти оба -
// проигравший получает ErrSlotNotAvailable.
func (r *Repository) Claim(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_appointments", squirrel.Expr("current_appointments + 1")).
		Set("is_available", squirrel.Expr("current_appointments + 1 < max_appointments")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_appointments < max_appointments")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// Release освобождает одно место в слоте (симметрично Claim)
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("current_appointments", squirrel.Expr("current_appointments - 1")).
		Set("is_available", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_appointments > 0")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNothingToRelease
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ServiceID,
		&s.ArrangementID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.MaxAppointments,
		&s.CurrentAppointments,
		&s.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
