package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Identity учётная запись для входа
type Identity struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}

type IdentityRepository struct {
	*base.Repository
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{Repository: base.NewRepository(pool)}
}

// GetByEmail получает учётную запись по email (без учёта регистра)
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	query := `SELECT id, email, password_hash FROM identities WHERE lower(email) = lower($1)`

	var identity Identity
	err := r.Pool().QueryRow(ctx, query, email).Scan(&identity.ID, &identity.Email, &identity.PasswordHash)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}

	return &identity, nil
}

// CreateWithProfile создаёт учётную запись и профиль одной транзакцией.
// Профиль создаётся или перезаписывается с указанной ролью.
func (r *IdentityRepository) CreateWithProfile(ctx context.Context, email, passwordHash string, name *string, role model.Role) (*model.Profile, error) {
	id := uuid.New()
	var profile *model.Profile

	err := r.WithTx(ctx, func(q base.Querier) error {
		_, err := q.Exec(ctx,
			`INSERT INTO identities (id, email, password_hash) VALUES ($1, $2, $3)`,
			id, email, passwordHash)
		if err != nil {
			if base.IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("insert identity: %w", err)
		}

		profile, err = scanProfile(q.QueryRow(ctx, `
			INSERT INTO profiles (id, email, name, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role
			RETURNING `+profileColumns,
			id, email, name, role))
		if err != nil {
			return fmt.Errorf("upsert profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}
