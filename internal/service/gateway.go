package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/google/uuid"
)

// ProfileStore хранилище профилей
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	List(ctx context.Context) ([]*model.Profile, error)
	UpdateName(ctx context.Context, id uuid.UUID, name *string) error
	SetTelegramChatID(ctx context.Context, id uuid.UUID, chatID *int64) error
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error)
}

// ShiftStore хранилище выходов
type ShiftStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Shift, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	Create(ctx context.Context, shift *model.Shift) error
	CreateBatch(ctx context.Context, shifts []*model.Shift) error
	Update(ctx context.Context, id uuid.UUID, patch model.ShiftPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReserveStore хранилище резервов. Confirm должен быть атомарным.
type ReserveStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Reserve, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reserve, error)
	Create(ctx context.Context, reserve *model.Reserve) error
	CreateBatch(ctx context.Context, reserves []*model.Reserve) error
	Update(ctx context.Context, id uuid.UUID, patch model.ReservePatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	Confirm(ctx context.Context, reserveID, adminID uuid.UUID, at time.Time) (*model.Shift, error)
}

// IdentityStore учётные записи для входа
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*repository.Identity, error)
	CreateWithProfile(ctx context.Context, email, passwordHash string, name *string, role model.Role) (*model.Profile, error)
}

// Notifier уведомления курьерам
type Notifier interface {
	ReserveConfirmed(ctx context.Context, courier *model.Profile, reserve *model.Reserve, shift *model.Shift) error
}

func requireAdmin(ctx context.Context, profiles ProfileStore, id uuid.UUID) (*model.Profile, error) {
	profile, err := profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get acting profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if !profile.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return profile, nil
}
