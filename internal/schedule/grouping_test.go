package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

func reserveOn(date string, status model.ReserveStatus) *model.Reserve {
	return &model.Reserve{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Date:     date,
		TimeFrom: "09:00",
		TimeTo:   "15:00",
		Status:   status,
		Location: model.LocationOwnPoints,
	}
}

func shiftOn(date, from string) *model.Shift {
	return &model.Shift{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Date:     date,
		TimeFrom: from,
		TimeTo:   "18:00",
	}
}

func TestGroupByDate_SortedKeys(t *testing.T) {
	reserves := []*model.Reserve{
		reserveOn("2025-10-05", model.StatusCan),
		reserveOn("2025-10-02", model.StatusCan),
		reserveOn("2025-10-05", model.StatusIfNeeded),
	}

	grouped := GroupByDate(reserves)
	keys := SortedDateKeys(grouped)

	assert.Equal(t, []string{"2025-10-02", "2025-10-05"}, keys)
	require.Len(t, grouped["2025-10-05"], 2)
	// порядок внутри группы совпадает с входным
	assert.Same(t, reserves[0], grouped["2025-10-05"][0])
	assert.Same(t, reserves[2], grouped["2025-10-05"][1])
}

func TestSortByDate_StableByDateThenTime(t *testing.T) {
	a := shiftOn("2025-10-05", "12:00")
	b := shiftOn("2025-10-02", "09:00")
	c := shiftOn("2025-10-05", "08:00")
	d := shiftOn("2025-10-05", "12:00")

	input := []*model.Shift{a, b, c, d}
	sorted := SortByDate(input)

	assert.Equal(t, []*model.Shift{b, c, a, d}, sorted)
	// вход не меняется
	assert.Equal(t, []*model.Shift{a, b, c, d}, input)
}

func TestFilterByMonthPrefix(t *testing.T) {
	shifts := []*model.Shift{shiftOn("2025-09-30", "09:00")}

	assert.Empty(t, FilterByMonthPrefix(shifts, 2025, 10))
	assert.Len(t, FilterByMonthPrefix(shifts, 2025, 9), 1)
}

func TestFilterByMonthPrefix_AbsenceStartingEarlierIsExcluded(t *testing.T) {
	dateTo := "2025-10-10"
	vacation := reserveOn("2025-09-25", model.StatusVacation)
	vacation.DateTo = &dateTo

	assert.Empty(t, FilterByMonthPrefix([]*model.Reserve{vacation}, 2025, 10))
}

func TestFilterByDate(t *testing.T) {
	shifts := []*model.Shift{
		shiftOn("2025-10-01", "09:00"),
		shiftOn("2025-10-02", "09:00"),
		shiftOn("2025-10-01", "15:00"),
	}
	assert.Len(t, FilterByDate(shifts, "2025-10-01"), 2)
	assert.Empty(t, FilterByDate(shifts, "2025-10-03"))
}

func TestShiftCountByDate(t *testing.T) {
	shifts := []*model.Shift{
		shiftOn("2025-10-07", "09:00"),
		shiftOn("2025-10-07", "10:00"),
		shiftOn("2025-10-07", "11:00"),
	}

	counts := ShiftCountByDate(shifts)

	assert.Equal(t, 3, counts["2025-10-07"])
	assert.Equal(t, 0, counts["2025-10-08"])
	_, ok := counts["2025-10-08"]
	assert.False(t, ok)
}

func TestReserveStatusSetByDate(t *testing.T) {
	reserves := []*model.Reserve{
		reserveOn("2025-10-05", model.StatusIfNeeded),
		reserveOn("2025-10-05", model.StatusCan),
		reserveOn("2025-10-05", model.StatusCan),
		reserveOn("2025-10-05", model.ReserveStatus("foo")),
		reserveOn("2025-10-06", model.StatusSickLeave),
	}

	set := ReserveStatusSetByDate(reserves)

	assert.Equal(t, []model.ReserveStatus{model.StatusCan, model.StatusIfNeeded, "foo"}, set["2025-10-05"])
	assert.Equal(t, []model.ReserveStatus{model.StatusSickLeave}, set["2025-10-06"])
	assert.NotContains(t, set, "2025-10-07")
}
