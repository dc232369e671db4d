package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultRecurrenceWeeks горизонт повторения, если дата окончания не указана
const DefaultRecurrenceWeeks = 4

// MaxRecurrenceYears насколько далеко от базовой даты может заходить повторение
const MaxRecurrenceYears = 1

// ErrRecurrenceTooLong дата окончания повторения дальше MaxRecurrenceYears
var ErrRecurrenceTooLong = errors.New("recurrence horizon too long")

// WithinRecurrenceHorizon until не дальше MaxRecurrenceYears от base.
// Некорректные даты считаются вне горизонта.
func WithinRecurrenceHorizon(base, until string) bool {
	start, err := time.Parse(ISODateLayout, base)
	if err != nil {
		return false
	}
	end, err := time.Parse(ISODateLayout, until)
	if err != nil {
		return false
	}
	return !end.After(start.AddDate(MaxRecurrenceYears, 0, 0))
}

// storageWeekdays индексы хранения: 0 = воскресенье
var storageWeekdays = []rrule.Weekday{
	rrule.SU,
	rrule.MO,
	rrule.TU,
	rrule.WE,
	rrule.TH,
	rrule.FR,
	rrule.SA,
}

// RecurrenceDates даты повторений после base до until включительно.
// repeatDays в индексах хранения; пустой набор означает день недели base.
// Пустой until ограничивает повторение DefaultRecurrenceWeeks неделями.
func RecurrenceDates(base string, repeatDays []int, until string) ([]string, error) {
	start, err := time.Parse(ISODateLayout, base)
	if err != nil {
		return nil, fmt.Errorf("parse base date %q: %w", base, err)
	}

	var end time.Time
	if until == "" {
		end = start.AddDate(0, 0, DefaultRecurrenceWeeks*7)
	} else {
		end, err = time.Parse(ISODateLayout, until)
		if err != nil {
			return nil, fmt.Errorf("parse until date %q: %w", until, err)
		}
		if end.After(start.AddDate(MaxRecurrenceYears, 0, 0)) {
			return nil, fmt.Errorf("%w: %s after %s", ErrRecurrenceTooLong, until, base)
		}
	}

	if !end.After(start) {
		return nil, nil
	}

	days := repeatDays
	if len(days) == 0 {
		days = []int{int(start.Weekday())}
	}

	byWeekday := make([]rrule.Weekday, 0, len(days))
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %d", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		byWeekday = append(byWeekday, storageWeekdays[d])
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start.AddDate(0, 0, 1),
		Until:     end,
		Byweekday: byWeekday,
		Wkst:      rrule.MO,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	occurrences := rule.All()
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.Format(ISODateLayout))
	}
	sort.Strings(dates)

	return dates, nil
}
