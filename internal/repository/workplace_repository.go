package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkplaceRepository struct {
	*base.Repository
}

func NewWorkplaceRepository(pool *pgxpool.Pool) *WorkplaceRepository {
	return &WorkplaceRepository{Repository: base.NewRepository(pool)}
}

// List все точки
func (r *WorkplaceRepository) List(ctx context.Context) ([]model.Workplace, error) {
	rows, err := r.Pool().Query(ctx, `SELECT id, code, address FROM workplaces ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workplaces: %w", err)
	}
	defer rows.Close()

	var workplaces []model.Workplace
	for rows.Next() {
		var w model.Workplace
		if err := rows.Scan(&w.ID, &w.Code, &w.Address); err != nil {
			return nil, fmt.Errorf("scan workplace: %w", err)
		}
		workplaces = append(workplaces, w)
	}

	return workplaces, rows.Err()
}

// Seed загружает справочник точек; существующие записи перезаписываются
func (r *WorkplaceRepository) Seed(ctx context.Context, workplaces []model.Workplace) error {
	return r.WithTx(ctx, func(q base.Querier) error {
		for _, w := range workplaces {
			_, err := q.Exec(ctx, `
				INSERT INTO workplaces (id, code, address) VALUES ($1, $2, $3)
				ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, address = EXCLUDED.address
			`, w.ID, w.Code, w.Address)
			if err != nil {
				return fmt.Errorf("seed workplace %s: %w", w.ID, err)
			}
		}
		return nil
	})
}
