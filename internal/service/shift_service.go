package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/Freeeeeet/courier_scheduler/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShiftService struct {
	shiftRepo  ShiftStore
	workplaces map[string]model.Workplace
	logger     *zap.Logger
}

func NewShiftService(shiftRepo ShiftStore, workplaces []model.Workplace, logger *zap.Logger) *ShiftService {
	byID := make(map[string]model.Workplace, len(workplaces))
	for _, w := range workplaces {
		byID[w.ID] = w
	}
	return &ShiftService{
		shiftRepo:  shiftRepo,
		workplaces: byID,
		logger:     logger,
	}
}

// GetCourierShifts выходы курьера
func (s *ShiftService) GetCourierShifts(ctx context.Context, userID uuid.UUID) ([]*model.Shift, error) {
	return s.shiftRepo.List(ctx, model.ForUser(userID))
}

// CreateShift создаёт выход. При повторении конкретные выходы создаются сразу,
// вместе с исходным, одной пачкой.
func (s *ShiftService) CreateShift(ctx context.Context, userID uuid.UUID, in ShiftInput) ([]*model.Shift, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWorkplace(in.WorkplaceID); err != nil {
		return nil, err
	}

	shift := in.toShift(userID)
	shift.ID = uuid.New()

	occurrences, err := schedule.ExpandShift(shift, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	shifts := append([]*model.Shift{shift}, occurrences...)
	if len(shifts) == 1 {
		err = s.shiftRepo.Create(ctx, shift)
	} else {
		err = s.shiftRepo.CreateBatch(ctx, shifts)
	}
	if err != nil {
		s.logger.Error("Failed to create shift",
			zap.String("user_id", userID.String()),
			zap.String("date", in.Date),
			zap.Error(err))
		return nil, fmt.Errorf("create shift: %w", err)
	}

	s.logger.Info("Shift planned",
		zap.String("shift_id", shift.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("date", shift.Date),
		zap.Int("occurrences", len(occurrences)),
	)

	return shifts, nil
}

// UpdateShift обновляет выход владельца. Повторение заново не разворачивается.
func (s *ShiftService) UpdateShift(ctx context.Context, userID, shiftID uuid.UUID, in ShiftInput) (*model.Shift, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWorkplace(in.WorkplaceID); err != nil {
		return nil, err
	}

	if _, err := s.getOwned(ctx, userID, shiftID); err != nil {
		return nil, err
	}

	workplaceID := in.WorkplaceID
	repeatDays := in.RepeatDays
	repeatUntil := in.RepeatUntil
	patch := model.ShiftPatch{
		Date:        &in.Date,
		TimeFrom:    &in.TimeFrom,
		TimeTo:      &in.TimeTo,
		WorkplaceID: &workplaceID,
		Repeat:      &in.Repeat,
		RepeatDays:  &repeatDays,
		RepeatUntil: &repeatUntil,
	}

	if err := s.shiftRepo.Update(ctx, shiftID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("update shift: %w", err)
	}

	updated, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("get updated shift: %w", err)
	}
	if updated == nil {
		return nil, ErrShiftNotFound
	}

	s.logger.Info("Shift updated",
		zap.String("shift_id", shiftID.String()),
		zap.String("user_id", userID.String()),
	)

	return updated, nil
}

// DeleteShift удаляет выход владельца
func (s *ShiftService) DeleteShift(ctx context.Context, userID, shiftID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, shiftID); err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, shiftID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("delete shift: %w", err)
	}

	s.logger.Info("Shift deleted",
		zap.String("shift_id", shiftID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *ShiftService) getOwned(ctx context.Context, userID, shiftID uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("get shift: %w", err)
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if shift.UserID != userID {
		return nil, ErrNotOwner
	}
	return shift, nil
}

func (s *ShiftService) checkWorkplace(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := s.workplaces[*id]; !ok {
		return ErrUnknownWorkplace
	}
	return nil
}
