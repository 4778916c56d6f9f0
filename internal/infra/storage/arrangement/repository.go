package arrangement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/pkg/dbmetrics"
	"github.com/avdeenko/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы со связками услуга-шаблон
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает одну связку услуга-шаблон
func (r *Repository) Create(ctx context.Context, arr *domain.Arrangement) (*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("arrangements").
		Columns("service_id", "template_id", "start_date", "sort_order").
		Values(arr.ServiceID, arr.TemplateID, arr.StartDate, arr.SortOrder).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&arr.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	arr.CreatedAt = createdAt.Time
	arr.UpdatedAt = updatedAt.Time

	return arr, nil
}

// CreateBatch создает несколько связок за одну транзакцию.
// Предполагается вызов внутри txmanager.Do.
func (r *Repository) CreateBatch(ctx context.Context, arrs []*domain.Arrangement) ([]*domain.Arrangement, error) {
	created := make([]*domain.Arrangement, 0, len(arrs))
	for _, arr := range arrs {
		c, err := r.Create(ctx, arr)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

// GetByID получает связку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "template_id", "start_date", "sort_order", "created_at", "updated_at").
		From("arrangements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	arr, err := scanArrangement(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrArrangementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan arrangement: %v", ErrScanRow, err)
	}

	return arr, nil
}

// GetByServiceID получает все связки услуги в порядке sort_order
func (r *Repository) GetByServiceID(ctx context.Context, serviceID int64) ([]*domain.Arrangement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "service_id", "template_id", "start_date", "sort_order", "created_at", "updated_at").
		From("arrangements").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("sort_order ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	arrangements := make([]*domain.Arrangement, 0)
	for rows.Next() {
		var arr domain.Arrangement
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&arr.ID,
			&arr.ServiceID,
			&arr.TemplateID,
			&arr.StartDate,
			&arr.SortOrder,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByServiceID - scan row: %v", ErrScanRow, err)
		}

		arr.CreatedAt = createdAt.Time
		arr.UpdatedAt = updatedAt.Time
		arrangements = append(arrangements, &arr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByServiceID - rows error: %v", ErrScanRow, err)
	}

	return arrangements, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArrangement(row rowScanner) (*domain.Arrangement, error) {
	var arr domain.Arrangement
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&arr.ID,
		&arr.ServiceID,
		&arr.TemplateID,
		&arr.StartDate,
		&arr.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	arr.CreatedAt = createdAt.Time
	arr.UpdatedAt = updatedAt.Time

	return &arr, nil
}
