package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

func TestCalcDuration(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"day shift", "09:00", "17:00", "8ч"},
		{"overnight shift", "22:00", "06:00", "8ч"},
		{"half an hour", "09:00", "09:30", "0ч 30м"},
		{"hours and minutes", "10:15", "18:45", "8ч 30м"},
		{"same time", "12:00", "12:00", "0ч"},
		{"malformed", "9am", "17:00", "—"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcDuration(tt.from, tt.to))
		})
	}
}

func TestFormatDateHeader(t *testing.T) {
	assert.Equal(t, "5 окт, Вс", FormatDateHeader("2025-10-05"))
	assert.Equal(t, "3 ноя, Пн", FormatDateHeader("2025-11-03"))
	assert.Equal(t, "1 мая, Чт", FormatDateHeader("2025-05-01"))
	assert.Equal(t, "not-a-date", FormatDateHeader("not-a-date"))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "Октябрь 2025", FormatMonthYear(2025, 10))
	assert.Equal(t, "Январь 2026", FormatMonthYear(2026, 1))
}

func TestFormatShortDate(t *testing.T) {
	assert.Equal(t, "05.10.25", FormatShortDate(time.Date(2025, 10, 5, 0, 0, 0, 0, time.Local)))
}

func TestWeekdayNames(t *testing.T) {
	assert.Equal(t, "Вс", GetWeekdayShortName(0))
	assert.Equal(t, "?", GetWeekdayShortName(7))
	assert.Equal(t, []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}, GridWeekdayLabels())
	assert.Equal(t, "Пн, Ср, Вс", FormatRepeatDays([]int{0, 3, 1}))
	assert.Equal(t, "", FormatRepeatDays(nil))
}

func TestStatusLabel_UnknownFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "Могу", StatusLabel(model.StatusCan))
	assert.Equal(t, "Больничный", StatusLabel(model.StatusSickLeave))
	assert.Equal(t, "foo", StatusLabel(model.ReserveStatus("foo")))
	assert.Equal(t, "", StatusLabel(""))
}

func TestLocationLabel_UnknownFallsBackToRaw(t *testing.T) {
	assert.Equal(t, "По всему городу", LocationLabel(model.LocationWholeCity))
	assert.Equal(t, "region", LocationLabel(model.Location("region")))
}

func TestCourierName(t *testing.T) {
	name := "Иван"
	empty := ""
	email := "ivan.petrov@example.com"

	assert.Equal(t, "Иван", CourierName(&model.Profile{Name: &name, Email: &email}))
	assert.Equal(t, "ivan.petrov", CourierName(&model.Profile{Name: &empty, Email: &email}))
	assert.Equal(t, "Курьер", CourierName(&model.Profile{}))
	assert.Equal(t, "Курьер", CourierName(nil))
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "выходов"},
		{1, "выход"},
		{2, "выхода"},
		{5, "выходов"},
		{11, "выходов"},
		{12, "выходов"},
		{21, "выход"},
		{22, "выхода"},
		{111, "выходов"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeShifts(tt.count), "%d", tt.count)
	}
	assert.Equal(t, "курьера", PluralizeCouriers(3))
	assert.Equal(t, "резервов", PluralizeReserves(7))
}
