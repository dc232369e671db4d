package schedule

import (
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

func untilOrEmpty(override string, declared *string) string {
	if override != "" {
		return override
	}
	if declared != nil {
		return *declared
	}
	return ""
}

// ExpandShift конкретные выходы по объявлению повторения базового выхода.
// Базовый выход в результат не входит. until переопределяет RepeatUntil.
func ExpandShift(base *model.Shift, until string) ([]*model.Shift, error) {
	if !base.Repeat {
		return nil, nil
	}
	dates, err := calendar.RecurrenceDates(base.Date, base.RepeatDays, untilOrEmpty(until, base.RepeatUntil))
	if err != nil {
		return nil, fmt.Errorf("expand shift recurrence: %w", err)
	}
	shifts := make([]*model.Shift, 0, len(dates))
	for _, d := range dates {
		shifts = append(shifts, base.Occurrence(d))
	}
	return shifts, nil
}

// ExpandReserve конкретные резервы по объявлению повторения. Отсутствия не повторяются.
func ExpandReserve(base *model.Reserve, until string) ([]*model.Reserve, error) {
	if !base.Repeat || base.Status.IsAbsence() {
		return nil, nil
	}
	dates, err := calendar.RecurrenceDates(base.Date, base.RepeatDays, untilOrEmpty(until, base.RepeatUntil))
	if err != nil {
		return nil, fmt.Errorf("expand reserve recurrence: %w", err)
	}
	reserves := make([]*model.Reserve, 0, len(dates))
	for _, d := range dates {
		reserves = append(reserves, base.Occurrence(d))
	}
	return reserves, nil
}
