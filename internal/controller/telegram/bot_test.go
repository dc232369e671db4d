package telegram

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

func TestUpcomingShiftsText(t *testing.T) {
	shifts := []*model.Shift{
		{Date: "2025-11-01", TimeFrom: "09:00", TimeTo: "15:00"},
		{Date: "2025-11-03", TimeFrom: "09:00", TimeTo: "15:00", ConfirmedByAdmin: true},
		{Date: "2025-11-04", TimeFrom: "22:00", TimeTo: "02:00"},
	}

	text := UpcomingShiftsText(shifts, "2025-11-03")

	assert.True(t, strings.HasPrefix(text, "📅 Ближайшие выходы:"))
	assert.NotContains(t, text, "1 ноя")
	assert.Contains(t, text, "09:00 — 15:00 (6ч) ✅")
	assert.Contains(t, text, "22:00 — 02:00 (4ч)")
}

func TestUpcomingShiftsText_Empty(t *testing.T) {
	past := []*model.Shift{{Date: "2025-10-01", TimeFrom: "09:00", TimeTo: "15:00"}}

	assert.Equal(t, "Нет запланированных выходов", UpcomingShiftsText(nil, "2025-11-03"))
	assert.Equal(t, "Нет запланированных выходов", UpcomingShiftsText(past, "2025-11-03"))
}

func TestUpcomingShiftsText_Limit(t *testing.T) {
	var shifts []*model.Shift
	for day := 1; day <= 20; day++ {
		shifts = append(shifts, &model.Shift{Date: fmt.Sprintf("2025-11-%02d", day), TimeFrom: "09:00", TimeTo: "10:00"})
	}

	text := UpcomingShiftsText(shifts, "2025-11-01")
	assert.Equal(t, upcomingLimit, strings.Count(text, "(1ч)"))
}

func TestStartText(t *testing.T) {
	text := StartText("link-code")
	assert.Contains(t, text, "link-code")
	assert.Contains(t, text, "15 минут")
	assert.NotContains(t, text, "chat id")
}
