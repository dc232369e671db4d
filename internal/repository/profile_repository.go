package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, email, name, role, telegram_chat_id, created_at`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.Role,
		&p.TelegramChatID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID получает профиль по ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Профиль не найден
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}

	return profile, nil
}

// List все профили, упорядоченные по имени
func (r *ProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY name NULLS LAST, email`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

// GetByTelegramChatID профиль по привязанному чату; (nil, nil) если не найден
func (r *ProfileRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE telegram_chat_id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, chatID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by telegram chat: %w", err)
	}

	return profile, nil
}

// UpdateName меняет отображаемое имя; nil очищает имя
func (r *ProfileRepository) UpdateName(ctx context.Context, id uuid.UUID, name *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("update profile name: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// SetTelegramChatID привязывает чат Telegram для уведомлений
func (r *ProfileRepository) SetTelegramChatID(ctx context.Context, id uuid.UUID, chatID *int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET telegram_chat_id = $1 WHERE id = $2`, chatID, id)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrChatTaken
		}
		return fmt.Errorf("update profile telegram chat: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
