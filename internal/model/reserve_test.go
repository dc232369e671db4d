package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveNormalize_Absence(t *testing.T) {
	dateTo := "2025-11-14"
	until := "2025-12-01"
	r := &Reserve{
		Date:        "2025-11-03",
		DateTo:      &dateTo,
		TimeFrom:    "09:00",
		TimeTo:      "15:00",
		Status:      StatusVacation,
		Location:    LocationWholeCity,
		Repeat:      true,
		RepeatDays:  []int{1},
		RepeatUntil: &until,
	}

	r.Normalize()

	assert.Equal(t, AbsenceTimeFrom, r.TimeFrom)
	assert.Equal(t, AbsenceTimeTo, r.TimeTo)
	assert.Equal(t, LocationOwnPoints, r.Location)
	assert.False(t, r.Repeat)
	assert.Nil(t, r.RepeatDays)
	assert.Nil(t, r.RepeatUntil)
	require.NotNil(t, r.DateTo)
	assert.Equal(t, "2025-11-14", *r.DateTo)
}

func TestReserveNormalize_RegularDropsDateTo(t *testing.T) {
	dateTo := "2025-11-14"
	r := &Reserve{Date: "2025-11-03", DateTo: &dateTo, TimeFrom: "09:00", TimeTo: "15:00",
		Status: StatusCan, Location: LocationWholeCity}

	r.Normalize()

	assert.Nil(t, r.DateTo)
	assert.Equal(t, "09:00", r.TimeFrom)
	assert.Equal(t, LocationWholeCity, r.Location)
}

func TestReserveState(t *testing.T) {
	r := &Reserve{Status: StatusCan}
	assert.Equal(t, ReserveStatePending, r.State())
	assert.True(t, r.CanConfirm())

	r.Confirmed = true
	assert.Equal(t, ReserveStateConfirmed, r.State())
	assert.False(t, r.CanConfirm())
}

func TestReserveStatus_Confirmable(t *testing.T) {
	tests := []struct {
		status      ReserveStatus
		confirmable bool
		absence     bool
		known       bool
	}{
		{StatusCan, true, false, true},
		{StatusIfNeeded, true, false, true},
		{StatusCannot, false, false, true},
		{StatusVacation, false, true, true},
		{StatusSickLeave, false, true, true},
		{ReserveStatus("foo"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.confirmable, tt.status.IsConfirmable())
			assert.Equal(t, tt.absence, tt.status.IsAbsence())
			assert.Equal(t, tt.known, tt.status.IsKnown())
		})
	}
	assert.Equal(t, len(KnownStatuses), ReserveStatus("foo").Order())
	assert.Equal(t, 0, StatusCan.Order())
}

func TestOccurrence_CopiesScheduleNotState(t *testing.T) {
	base := &Shift{ID: uuid.New(), UserID: uuid.New(), Date: "2025-11-03", TimeFrom: "09:00", TimeTo: "17:00",
		Repeat: true, RepeatDays: []int{1}, ConfirmedByAdmin: true}

	occ := base.Occurrence("2025-11-10")

	assert.Equal(t, "2025-11-10", occ.Date)
	assert.Equal(t, uuid.Nil, occ.ID)
	assert.False(t, occ.Repeat)
	assert.False(t, occ.ConfirmedByAdmin)
	require.NotNil(t, occ.SeriesID)
	assert.Equal(t, base.ID, *occ.SeriesID)

	assert.False(t, Location("x").IsKnown())
	assert.True(t, LocationWholeCity.IsKnown())
}
