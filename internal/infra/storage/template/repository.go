package template

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/pkg/dbmetrics"
	"github.com/avdeenko/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с шаблонами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает шаблон вместе с днями и сегментами.
// Вызывается внутри транзакции (через txmanager), чтобы дерево
// template -> days -> segments сохранялось атомарно.
func (r *Repository) Create(ctx context.Context, tpl *domain.Template) (*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("templates").
		Columns("provider_id", "name").
		Values(tpl.ProviderID, tpl.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	for i := range tpl.Days {
		day := &tpl.Days[i]
		day.TemplateID = tpl.ID

		query, args, err := psqlbuilder.Insert("template_days").
			Columns("template_id", "weekday", "is_available").
			Values(day.TemplateID, day.Weekday, day.IsAvailable).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build day insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert day: %v", ErrExecQuery, err)
		}

		for j := range day.Segments {
			segment := &day.Segments[j]
			segment.DayID = day.ID
			segment.TemplateID = tpl.ID

			query, args, err := psqlbuilder.Insert("template_segments").
				Columns("day_id", "template_id", "start_time", "end_time").
				Values(segment.DayID, segment.TemplateID, segment.StartTime, segment.EndTime).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return nil, fmt.Errorf("%w: Create - build segment insert query: %v", ErrBuildQuery, err)
			}

			if err := executor.QueryRowContext(ctx, query, args...).Scan(&segment.ID); err != nil {
				return nil, fmt.Errorf("%w: Create - insert segment: %v", ErrExecQuery, err)
			}
		}
	}

	return tpl, nil
}

// GetByID получает шаблон по ID вместе с днями и сегментами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "created_at", "updated_at").
		From("templates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var tpl domain.Template
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.ID,
		&tpl.ProviderID,
		&tpl.Name,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan template: %v", ErrScanRow, err)
	}

	tpl.CreatedAt = createdAt.Time
	tpl.UpdatedAt = updatedAt.Time

	if err := r.loadDays(ctx, executor, &tpl); err != nil {
		return nil, err
	}

	return &tpl, nil
}

// ListByProvider получает все шаблоны провайдера (без деревьев дней)
func (r *Repository) ListByProvider(ctx context.Context, providerID int64) ([]*domain.Template, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "created_at", "updated_at").
		From("templates").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.Template, 0)
	for rows.Next() {
		var tpl domain.Template
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&tpl.ID, &tpl.ProviderID, &tpl.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %v", ErrScanRow, err)
		}

		tpl.CreatedAt = createdAt.Time
		tpl.UpdatedAt = updatedAt.Time
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// loadDays загружает дни и сегменты шаблона
func (r *Repository) loadDays(ctx context.Context, executor DBExecutor, tpl *domain.Template) error {
	query, args, err := psqlbuilder.Select("id", "template_id", "weekday", "is_available").
		From("template_days").
		Where(squirrel.Eq{"template_id": tpl.ID}).
		OrderBy("weekday ASC, id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.Day, 0)
	for rows.Next() {
		var day domain.Day
		if err := rows.Scan(&day.ID, &day.TemplateID, &day.Weekday, &day.IsAvailable); err != nil {
			return fmt.Errorf("%w: loadDays - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadDays - rows error: %v", ErrScanRow, err)
	}

	for i := range days {
		if err := r.loadSegments(ctx, executor, &days[i]); err != nil {
			return err
		}
	}

	tpl.Days = days
	return nil
}

// loadSegments загружает сегменты одного дня
func (r *Repository) loadSegments(ctx context.Context, executor DBExecutor, day *domain.Day) error {
	query, args, err := psqlbuilder.Select("id", "day_id", "template_id", "start_time", "end_time").
		From("template_segments").
		Where(squirrel.Eq{"day_id": day.ID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadSegments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSegments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	segments := make([]domain.Segment, 0)
	for rows.Next() {
		var segment domain.Segment
		if err := rows.Scan(&segment.ID, &segment.DayID, &segment.TemplateID, &segment.StartTime, &segment.EndTime); err != nil {
			return fmt.Errorf("%w: loadSegments - scan row: %v", ErrScanRow, err)
		}
		segments = append(segments, segment)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSegments - rows error: %v", ErrScanRow, err)
	}

	day.Segments = segments
	return nil
}
