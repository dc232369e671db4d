// Package calendar содержит чистые функции для работы с датами, временем суток и днями недели.
// Даты наивные: без часовых поясов, по календарным полям.
package calendar

import (
	"fmt"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	ClockLayout   = "15:04"

	minutesPerDay = 24 * 60
)

// ToISODate форматирует дату как YYYY-MM-DD по календарным полям самой даты
func ToISODate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseISODate разбирает YYYY-MM-DD в локальную полночь
func ParseISODate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// IsISODate проверяет формат YYYY-MM-DD
func IsISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

// MonthPrefix префикс ISO-даты для месяца: "2025-10"
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonth разбирает "YYYY-MM"
func ParseMonth(s string) (year, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t.Year(), int(t.Month()), nil
}

// DaysInMonth количество дней в месяце (month 1-12)
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOffset сколько пустых клеток стоит перед первым числом в сетке,
// начинающейся с понедельника (пн = 0 … вс = 6)
func FirstWeekdayOffset(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return StorageToGridWeekday(int(first.Weekday()))
}

// StorageToGridWeekday переводит индекс хранения (вс = 0) в индекс сетки (пн = 0)
func StorageToGridWeekday(d int) int {
	return (d + 6) % 7
}

// GridToStorageWeekday переводит индекс сетки (пн = 0) в индекс хранения (вс = 0)
func GridToStorageWeekday(i int) int {
	return (i + 1) % 7
}

// ParseClock разбирает HH:MM в минуты от полуночи
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock форматирует минуты от полуночи как HH:MM
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationMinutes длительность смены в минутах; переход через полночь учитывается
func DurationMinutes(from, to string) (int, error) {
	f, err := ParseClock(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseClock(to)
	if err != nil {
		return 0, err
	}
	return ((t-f)%minutesPerDay + minutesPerDay) % minutesPerDay, nil
}

// TimeOptions варианты времени для выбора с шагом 30 минут
func TimeOptions() []string {
	var options []string
	for m := 7 * 60; m <= 23*60; m += 30 {
		options = append(options, FormatClock(m))
	}
	return options
}
