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
	"go.uber.org/zap"
)

const reserveColumns = `id, user_id, to_char(date, 'YYYY-MM-DD'), to_char(date_to, 'YYYY-MM-DD'),
	time_from, time_to, status, location, repeat, repeat_days, to_char(repeat_until, 'YYYY-MM-DD'),
	comment, confirmed, confirmed_by, confirmed_at, confirmed_shift_id, series_id, updated_at`

type ReserveRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewReserveRepository(pool *pgxpool.Pool, logger *zap.Logger) *ReserveRepository {
	return &ReserveRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

func scanReserve(row pgx.Row) (*model.Reserve, error) {
	var r model.Reserve
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Date,
		&r.DateTo,
		&r.TimeFrom,
		&r.TimeTo,
		&r.Status,
		&r.Location,
		&r.Repeat,
		&r.RepeatDays,
		&r.RepeatUntil,
		&r.Comment,
		&r.Confirmed,
		&r.ConfirmedBy,
		&r.ConfirmedAt,
		&r.ConfirmedShiftID,
		&r.SeriesID,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func insertReserve(ctx context.Context, q base.Querier, reserve *model.Reserve) error {
	query := `
		INSERT INTO planned_reserves (id, user_id, date, date_to, time_from, time_to, status, location,
			repeat, repeat_days, repeat_until, comment, series_id)
		VALUES ($1, $2, $3::date, $4::date, $5, $6, $7, $8, $9, $10, $11::date, $12, $13)
		RETURNING updated_at
	`

	if reserve.ID == uuid.Nil {
		reserve.ID = uuid.New()
	}

	return q.QueryRow(
		ctx, query,
		reserve.ID,
		reserve.UserID,
		reserve.Date,
		reserve.DateTo,
		reserve.TimeFrom,
		reserve.TimeTo,
		reserve.Status,
		reserve.Location,
		reserve.Repeat,
		reserve.RepeatDays,
		reserve.RepeatUntil,
		reserve.Comment,
		reserve.SeriesID,
	).Scan(&reserve.UpdatedAt)
}

// Create создаёт резерв
func (r *ReserveRepository) Create(ctx context.Context, reserve *model.Reserve) error {
	if err := insertReserve(ctx, r.Pool(), reserve); err != nil {
		return fmt.Errorf("create reserve: %w", err)
	}
	return nil
}

// CreateBatch создаёт резервы одной транзакцией
func (r *ReserveRepository) CreateBatch(ctx context.Context, reserves []*model.Reserve) error {
	err := r.WithTx(ctx, func(q base.Querier) error {
		for _, res := range reserves {
			if err := insertReserve(ctx, q, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create reserves batch: %w", err)
	}
	return nil
}

// GetByID получает резерв по ID
func (r *ReserveRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reserve, error) {
	query := `SELECT ` + reserveColumns + ` FROM planned_reserves WHERE id = $1`

	reserve, err := scanReserve(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reserve by id: %w", err)
	}

	return reserve, nil
}

// List резервы по фильтру, упорядоченные по дате
func (r *ReserveRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Reserve, error) {
	b := base.Builder.Select(reserveColumns).From("planned_reserves").OrderBy("date", "time_from", "id")
	b = applyListFilter(b, filter)

	rows, err := base.QueryBuilt(ctx, r.Pool(), b)
	if err != nil {
		return nil, fmt.Errorf("list reserves: %w", err)
	}
	defer rows.Close()

	var reserves []*model.Reserve
	for rows.Next() {
		reserve, err := scanReserve(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reserve: %w", err)
		}
		reserves = append(reserves, reserve)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reserves: %w", err)
	}

	return reserves, nil
}

// Update частично обновляет неподтверждённый резерв
func (r *ReserveRepository) Update(ctx context.Context, id uuid.UUID, patch model.ReservePatch) error {
	set := map[string]any{"updated_at": time.Now()}
	if patch.Date != nil {
		set["date"] = sq.Expr("?::date", *patch.Date)
	}
	if patch.DateTo != nil {
		set["date_to"] = sq.Expr("?::date", *patch.DateTo)
	}
	if patch.TimeFrom != nil {
		set["time_from"] = *patch.TimeFrom
	}
	if patch.TimeTo != nil {
		set["time_to"] = *patch.TimeTo
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
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
	if patch.Comment != nil {
		set["comment"] = *patch.Comment
	}

	affected, err := base.ExecBuilt(ctx, r.Pool(),
		base.Builder.Update("planned_reserves").SetMap(set).Where(sq.Eq{"id": id, "confirmed": false}))
	if err != nil {
		return fmt.Errorf("update reserve: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет неподтверждённый резерв
func (r *ReserveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.Pool().Exec(ctx, `DELETE FROM planned_reserves WHERE id = $1 AND confirmed = false`, id)
	if err != nil {
		return fmt.Errorf("delete reserve: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Confirm переводит резерв в выход одной транзакцией.
// Резерв блокируется на время транзакции; выход связан с резервом через source_reserve_id
// с уникальным индексом, поэтому повторное подтверждение не создаёт второй выход.
func (r *ReserveRepository) Confirm(ctx context.Context, reserveID, adminID uuid.UUID, at time.Time) (*model.Shift, error) {
	var shift *model.Shift

	err := r.WithTx(ctx, func(q base.Querier) error {
		reserve, err := scanReserve(q.QueryRow(ctx,
			`SELECT `+reserveColumns+` FROM planned_reserves WHERE id = $1 FOR UPDATE`, reserveID))
		if err != nil {
			if base.IsNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("lock reserve: %w", err)
		}

		if reserve.Confirmed {
			return ErrAlreadyConfirmed
		}
		if !reserve.Status.IsConfirmable() {
			return ErrNotConfirmable
		}

		sourceID := reserve.ID
		shift = &model.Shift{
			ID:               uuid.New(),
			UserID:           reserve.UserID,
			Date:             reserve.Date,
			TimeFrom:         reserve.TimeFrom,
			TimeTo:           reserve.TimeTo,
			ConfirmedByAdmin: true,
			SourceReserveID:  &sourceID,
		}
		if err := insertShift(ctx, q, shift); err != nil {
			if base.IsUniqueViolation(err) {
				return ErrAlreadyConfirmed
			}
			return fmt.Errorf("insert confirmed shift: %w", err)
		}

		tag, err := q.Exec(ctx, `
			UPDATE planned_reserves
			SET confirmed = true, confirmed_by = $1, confirmed_at = $2, confirmed_shift_id = $3, updated_at = $2
			WHERE id = $4 AND confirmed = false
		`, adminID, at, shift.ID, reserveID)
		if err != nil {
			return fmt.Errorf("mark reserve confirmed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrAlreadyConfirmed
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Reserve confirmed in storage",
		zap.String("reserve_id", reserveID.String()),
		zap.String("shift_id", shift.ID.String()),
	)

	return shift, nil
}
