package service

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return calendar.IsISODate(fl.Field().String())
	})
	validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseClock(fl.Field().String())
		return err == nil
	})
	validate.RegisterValidation("reserve_status", func(fl validator.FieldLevel) bool {
		return model.ReserveStatus(fl.Field().String()).IsKnown()
	})
	validate.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return model.Location(fl.Field().String()).IsKnown()
	})
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// ShiftInput поля формы выхода
type ShiftInput struct {
	Date        string  `json:"date" validate:"required,isodate"`
	TimeFrom    string  `json:"timeFrom" validate:"required,clock"`
	TimeTo      string  `json:"timeTo" validate:"required,clock"`
	WorkplaceID *string `json:"workplaceId" validate:"omitempty,min=1"`
	Repeat      bool    `json:"repeat"`
	RepeatDays  []int   `json:"repeatDays" validate:"omitempty,max=7,dive,min=0,max=6"`
	RepeatUntil *string `json:"repeatUntil" validate:"omitempty,isodate"`
}

// Validate проверяет форму выхода
func (in *ShiftInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	return validateRepeatUntil(in.Date, in.RepeatUntil)
}

// ReserveInput поля формы резерва
type ReserveInput struct {
	Date        string              `json:"date" validate:"required,isodate"`
	DateTo      *string             `json:"dateTo" validate:"omitempty,isodate"`
	TimeFrom    string              `json:"timeFrom" validate:"omitempty,clock"`
	TimeTo      string              `json:"timeTo" validate:"omitempty,clock"`
	Status      model.ReserveStatus `json:"status" validate:"required,reserve_status"`
	Location    model.Location      `json:"location" validate:"omitempty,location"`
	Repeat      bool                `json:"repeat"`
	RepeatDays  []int               `json:"repeatDays" validate:"omitempty,max=7,dive,min=0,max=6"`
	RepeatUntil *string             `json:"repeatUntil" validate:"omitempty,isodate"`
	Comment     *string             `json:"comment" validate:"omitempty,max=500"`
}

// Validate проверяет форму резерва. Для отсутствия время и точка не нужны,
// для остальных статусов обязательны.
func (in *ReserveInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if !in.Status.IsAbsence() {
		if in.TimeFrom == "" || in.TimeTo == "" || in.Location == "" {
			return fmt.Errorf("%w: time and location are required", ErrInvalidInput)
		}
	}
	if in.Status.IsAbsence() && in.DateTo != nil && *in.DateTo < in.Date {
		return fmt.Errorf("%w: date to before date", ErrInvalidInput)
	}
	return validateRepeatUntil(in.Date, in.RepeatUntil)
}

func validateRepeatUntil(date string, until *string) error {
	if until == nil {
		return nil
	}
	if *until < date {
		return fmt.Errorf("%w: repeat until before date", ErrInvalidInput)
	}
	if !calendar.WithinRecurrenceHorizon(date, *until) {
		return fmt.Errorf("%w: repeat until more than %d year after date", ErrInvalidInput, calendar.MaxRecurrenceYears)
	}
	return nil
}

// toReserve собирает резерв из формы и приводит его к инвариантам статуса
func (in *ReserveInput) toReserve(userID uuid.UUID) *model.Reserve {
	r := &model.Reserve{
		UserID:      userID,
		Date:        in.Date,
		DateTo:      in.DateTo,
		TimeFrom:    in.TimeFrom,
		TimeTo:      in.TimeTo,
		Status:      in.Status,
		Location:    in.Location,
		Repeat:      in.Repeat,
		RepeatDays:  in.RepeatDays,
		RepeatUntil: in.RepeatUntil,
		Comment:     trimmedOrNil(in.Comment),
	}
	r.Normalize()
	return r
}

func (in *ShiftInput) toShift(userID uuid.UUID) *model.Shift {
	return &model.Shift{
		UserID:      userID,
		Date:        in.Date,
		TimeFrom:    in.TimeFrom,
		TimeTo:      in.TimeTo,
		WorkplaceID: in.WorkplaceID,
		Repeat:      in.Repeat,
		RepeatDays:  in.RepeatDays,
		RepeatUntil: in.RepeatUntil,
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
