package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
)

var monthShortNames = []string{"янв", "фев", "мар", "апр", "мая", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}

var monthNames = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// weekdayShortNames по индексу хранения: 0 = воскресенье
var weekdayShortNames = []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// CalcDuration форматирует длительность смены: "8ч" или "0ч 30м".
// Смена через полночь считается по модулю суток. Для некорректного времени возвращает "—".
func CalcDuration(from, to string) string {
	mins, err := calendar.DurationMinutes(from, to)
	if err != nil {
		return "—"
	}
	h := mins / 60
	m := mins % 60
	if m > 0 {
		return fmt.Sprintf("%dч %dм", h, m)
	}
	return fmt.Sprintf("%dч", h)
}

// FormatDateHeader заголовок дня: "5 окт, Вс"
func FormatDateHeader(dateStr string) string {
	d, err := calendar.ParseISODate(dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%d %s, %s", d.Day(), monthShortNames[d.Month()-1], weekdayShortNames[d.Weekday()])
}

// FormatMonthYear заголовок календаря: "Октябрь 2025"
func FormatMonthYear(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// FormatShortDate дата в поле формы: "05.10.25"
func FormatShortDate(t time.Time) string {
	return t.Format("02.01.06")
}

// GetWeekdayShortName краткое название дня недели по индексу хранения
func GetWeekdayShortName(weekday int) string {
	if weekday >= 0 && weekday < len(weekdayShortNames) {
		return weekdayShortNames[weekday]
	}
	return "?"
}

// GridWeekdayLabels подписи колонок сетки месяца, начиная с понедельника
func GridWeekdayLabels() []string {
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = weekdayShortNames[calendar.GridToStorageWeekday(i)]
	}
	return labels
}

// FormatRepeatDays "Пн, Ср, Пт" в порядке сетки
func FormatRepeatDays(days []int) string {
	selected := make(map[int]bool, len(days))
	for _, d := range days {
		selected[d] = true
	}
	result := ""
	for i := 0; i < 7; i++ {
		d := calendar.GridToStorageWeekday(i)
		if !selected[d] {
			continue
		}
		if result != "" {
			result += ", "
		}
		result += weekdayShortNames[d]
	}
	return result
}
