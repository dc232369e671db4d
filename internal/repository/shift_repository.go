package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository/base"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shiftColumns = `id, user_id, to_char(date, 'YYYY-MM-DD'), time_from, time_to, workplace_id,
	repeat, repeat_days, to_char(repeat_until, 'YYYY-MM-DD'), confirmed_by_admin,
	source_reserve_id, series_id, updated_at`

type ShiftRepository struct {
	*base.Repository
}

func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{Repository: base.NewRepository(pool)}
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Date,
		&s.TimeFrom,
		&s.TimeTo,
		&s.WorkplaceID,
		&s.Repeat,
		&s.RepeatDays,
		&s.RepeatUntil,
		&s.ConfirmedByAdmin,
		&s.SourceReserveID,
		&s.SeriesID,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func insertShift(ctx context.Context, q base.Querier, shift *model.Shift) error {
	query := `
		INSERT INTO planned_shifts (id, user_id, date, time_from, time_to, workplace_id,
			repeat, repeat_days, repeat_until, confirmed_by_admin, source_reserve_id, series_id)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9::date, $10, $11, $12)
		RETURNING updated_at
	`

	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}

	return q.QueryRow(
		ctx, query,
		shift.ID,
		shift.UserID,
		shift.Date,
		shift.TimeFrom,
		shift.TimeTo,
		shift.WorkplaceID,
		shift.Repeat,
		shift.RepeatDays,
		shift.RepeatUntil,
		shift.ConfirmedByAdmin,
		shift.SourceReserveID,
		shift.SeriesID,
	).Scan(&shift.UpdatedAt)
}

// Create создаёт выход
func (r *ShiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	if err := insertShift(ctx, r.Pool(), shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// CreateBatch создаёт выходы одной транзакцией: либо все, либо ни одного
func (r *ShiftRepository) CreateBatch(ctx context.Context, shifts []*model.Shift) error {
	err := r.WithTx(ctx, func(q base.Querier) error {
		for _, s := range shifts {
			if err := insertShift(ctx, q, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create shifts batch: %w", err)
	}
	return nil
}

// GetByID получает выход по ID
func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM planned_shifts WHERE id = $1`

	shift, err := scanShift(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift by id: %w", err)
	}

	return shift, nil
}

// List выходы по фильтру, упорядоченные по дате и времени начала
func (r *ShiftRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Shift, error) {
	b := base.Builder.Select(shiftColumns).From("planned_shifts").OrderBy("date", "time_from", "id")
	b = applyListFilter(b, filter)

	rows, err := base.QueryBuilt(ctx, r.Pool(), b)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	return shifts, nil
}

// Update частично обновляет выход
func (r *ShiftRepository) Update(ctx context.Context, id uuid.UUID, patch model.ShiftPatch) error {
	set := map[string]any{"updated_at": time.Now()}
	if patch.Date != nil {
		set["date"] = sq.Expr("?::date", *patch.Date)
	}
	if patch.TimeFrom != nil {
		set["time_from"] = *patch.TimeFrom
	}
	if patch.TimeTo != nil {
		set["time_to"] = *patch.TimeTo
	}
	if patch.WorkplaceID != nil {
		set["workplace_id"] = *patch.WorkplaceID
	}
	if patch.Repeat != nil {
		set["repeat"] = *patch.Repeat
	}
	if patch.RepeatDays != nil {
		set["repeat_days"] = *patch.RepeatDays
	}
	if patch.RepeatUntil != nil {
		set["repeat_until"] = sq.Expr("?::date", *patch.RepeatUntil)
	}

	affected, err := base.ExecBuilt(ctx, r.Pool(),
		base.Builder.Update("planned_shifts").SetMap(set).Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет выход
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Pool().Exec(ctx, `DELETE FROM planned_shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func applyListFilter(b sq.SelectBuilder, filter model.ListFilter) sq.SelectBuilder {
	if filter.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.Year != 0 {
		from := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)
		b = b.Where("date >= ?::date AND date < ?::date", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return b
}
