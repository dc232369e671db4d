package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/Freeeeeet/courier_scheduler/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReserveService struct {
	reserveRepo ReserveStore
	profileRepo ProfileStore
	notifier    Notifier
	now         func() time.Time
	logger      *zap.Logger
}

func NewReserveService(
	reserveRepo ReserveStore,
	profileRepo ProfileStore,
	notifier Notifier,
	logger *zap.Logger,
) *ReserveService {
	return &ReserveService{
		reserveRepo: reserveRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		now:         time.Now,
		logger:      logger,
	}
}

// GetCourierReserves резервы курьера
func (s *ReserveService) GetCourierReserves(ctx context.Context, userID uuid.UUID) ([]*model.Reserve, error) {
	return s.reserveRepo.List(ctx, model.ForUser(userID))
}

// CreateReserve создаёт резерв (в состоянии ожидания) и его повторения
func (s *ReserveService) CreateReserve(ctx context.Context, userID uuid.UUID, in ReserveInput) ([]*model.Reserve, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	reserve := in.toReserve(userID)
	reserve.ID = uuid.New()

	occurrences, err := schedule.ExpandReserve(reserve, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reserves := append([]*model.Reserve{reserve}, occurrences...)
	if len(reserves) == 1 {
		err = s.reserveRepo.Create(ctx, reserve)
	} else {
		err = s.reserveRepo.CreateBatch(ctx, reserves)
	}
	if err != nil {
		s.logger.Error("Failed to create reserve",
			zap.String("user_id", userID.String()),
			zap.String("date", in.Date),
			zap.Error(err))
		return nil, fmt.Errorf("create reserve: %w", err)
	}

	s.logger.Info("Reserve planned",
		zap.String("reserve_id", reserve.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("status", string(reserve.Status)),
		zap.Int("occurrences", len(occurrences)),
	)

	return reserves, nil
}

// UpdateReserve обновляет резерв владельца, пока он не подтверждён
func (s *ReserveService) UpdateReserve(ctx context.Context, userID, reserveID uuid.UUID, in ReserveInput) (*model.Reserve, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.getEditable(ctx, userID, reserveID); err != nil {
		return nil, err
	}

	r := in.toReserve(userID)
	patch := model.ReservePatch{
		Date:        &r.Date,
		DateTo:      &r.DateTo,
		TimeFrom:    &r.TimeFrom,
		TimeTo:      &r.TimeTo,
		Status:      &r.Status,
		Location:    &r.Location,
		Repeat:      &r.Repeat,
		RepeatDays:  &r.RepeatDays,
		RepeatUntil: &r.RepeatUntil,
		Comment:     &r.Comment,
	}

	if err := s.reserveRepo.Update(ctx, reserveID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// резерв удалён или подтверждён между чтением и записью
			return nil, s.explainMissing(ctx, reserveID)
		}
		return nil, fmt.Errorf("update reserve: %w", err)
	}

	updated, err := s.reserveRepo.GetByID(ctx, reserveID)
	if err != nil {
		return nil, fmt.Errorf("get updated reserve: %w", err)
	}
	if updated == nil {
		return nil, ErrReserveNotFound
	}

	s.logger.Info("Reserve updated",
		zap.String("reserve_id", reserveID.String()),
		zap.String("user_id", userID.String()),
	)

	return updated, nil
}

// DeleteReserve удаляет резерв владельца, пока он не подтверждён
func (s *ReserveService) DeleteReserve(ctx context.Context, userID, reserveID uuid.UUID) error {
	if _, err := s.getEditable(ctx, userID, reserveID); err != nil {
		return err
	}

	if err := s.reserveRepo.Delete(ctx, reserveID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.explainMissing(ctx, reserveID)
		}
		return fmt.Errorf("delete reserve: %w", err)
	}

	s.logger.Info("Reserve deleted",
		zap.String("reserve_id", reserveID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// ConfirmResult итог подтверждения
type ConfirmResult struct {
	Shift   *model.Shift   `json:"shift"`
	Reserve *model.Reserve `json:"reserve"`
}

// Confirm куратор переводит резерв в выход.
// Выход создаётся и резерв помечается подтверждённым в одной транзакции хранилища;
// повторный вызов для того же резерва отклоняется и второй выход не создаёт.
func (s *ReserveService) Confirm(ctx context.Context, reserveID, adminID uuid.UUID) (*ConfirmResult, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	reserve, err := s.reserveRepo.GetByID(ctx, reserveID)
	if err != nil {
		return nil, fmt.Errorf("get reserve: %w", err)
	}
	if reserve == nil {
		return nil, ErrReserveNotFound
	}
	if reserve.Confirmed {
		return nil, ErrAlreadyConfirmed
	}
	if !reserve.Status.IsConfirmable() {
		return nil, ErrNotConfirmable
	}

	shift, err := s.reserveRepo.Confirm(ctx, reserveID, adminID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrReserveNotFound
		case errors.Is(err, repository.ErrAlreadyConfirmed):
			return nil, ErrAlreadyConfirmed
		case errors.Is(err, repository.ErrNotConfirmable):
			return nil, ErrNotConfirmable
		}
		s.logger.Error("Failed to confirm reserve",
			zap.String("reserve_id", reserveID.String()),
			zap.String("admin_id", adminID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("confirm reserve: %w", err)
	}

	// перечитываем: показываем то, что реально сохранено
	confirmed, err := s.reserveRepo.GetByID(ctx, reserveID)
	if err != nil {
		return nil, fmt.Errorf("get confirmed reserve: %w", err)
	}
	if confirmed == nil {
		return nil, ErrReserveNotFound
	}

	s.logger.Info("Reserve confirmed",
		zap.String("reserve_id", reserveID.String()),
		zap.String("shift_id", shift.ID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("courier_id", confirmed.UserID.String()),
	)

	s.notifyConfirmed(ctx, confirmed, shift)

	return &ConfirmResult{Shift: shift, Reserve: confirmed}, nil
}

func (s *ReserveService) notifyConfirmed(ctx context.Context, reserve *model.Reserve, shift *model.Shift) {
	if s.notifier == nil {
		return
	}

	courier, err := s.profileRepo.GetByID(ctx, reserve.UserID)
	if err != nil || courier == nil {
		s.logger.Warn("Courier for notification not found",
			zap.String("courier_id", reserve.UserID.String()),
			zap.Error(err))
		return
	}

	if err := s.notifier.ReserveConfirmed(ctx, courier, reserve, shift); err != nil {
		s.logger.Warn("Failed to notify courier about confirmation",
			zap.String("courier_id", courier.ID.String()),
			zap.Error(err))
	}
}

func (s *ReserveService) getEditable(ctx context.Context, userID, reserveID uuid.UUID) (*model.Reserve, error) {
	reserve, err := s.reserveRepo.GetByID(ctx, reserveID)
	if err != nil {
		return nil, fmt.Errorf("get reserve: %w", err)
	}
	if reserve == nil {
		return nil, ErrReserveNotFound
	}
	if reserve.UserID != userID {
		return nil, ErrNotOwner
	}
	if reserve.Confirmed {
		return nil, ErrReserveConfirmed
	}
	return reserve, nil
}

func (s *ReserveService) explainMissing(ctx context.Context, reserveID uuid.UUID) error {
	reserve, err := s.reserveRepo.GetByID(ctx, reserveID)
	if err != nil {
		return fmt.Errorf("get reserve: %w", err)
	}
	if reserve != nil && reserve.Confirmed {
		return ErrReserveConfirmed
	}
	return ErrReserveNotFound
}
