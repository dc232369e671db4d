package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	// AbsenceTimeFrom и AbsenceTimeTo фиксированное время для отпуска и больничного
	AbsenceTimeFrom = "00:00"
	AbsenceTimeTo   = "23:59"
)

// ReserveState состояние резерва в жизненном цикле
type ReserveState string

const (
	ReserveStatePending   ReserveState = "pending"
	ReserveStateConfirmed ReserveState = "confirmed"
)

// Reserve заявленная доступность или отсутствие курьера
type Reserve struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"userId"`
	Date             string        `json:"date"`
	DateTo           *string       `json:"dateTo"` // только для отпуска и больничного
	TimeFrom         string        `json:"timeFrom"`
	TimeTo           string        `json:"timeTo"`
	Status           ReserveStatus `json:"status"`
	Location         Location      `json:"location"`
	Repeat           bool          `json:"repeat"`
	RepeatDays       []int         `json:"repeatDays"`
	RepeatUntil      *string       `json:"repeatUntil"`
	Comment          *string       `json:"comment"`
	Confirmed        bool          `json:"confirmed"`
	ConfirmedBy      *uuid.UUID    `json:"confirmedBy"`
	ConfirmedAt      *time.Time    `json:"confirmedAt"`
	ConfirmedShiftID *uuid.UUID    `json:"confirmedShiftId"`
	SeriesID         *uuid.UUID    `json:"seriesId,omitempty"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// RecordDate дата записи для группировки
func (r *Reserve) RecordDate() string {
	return r.Date
}

// RecordTime время начала для сортировки внутри дня
func (r *Reserve) RecordTime() string {
	return r.TimeFrom
}

// State текущее состояние резерва
func (r *Reserve) State() ReserveState {
	if r.Confirmed {
		return ReserveStateConfirmed
	}
	return ReserveStatePending
}

// CanConfirm может ли куратор подтвердить резерв сейчас
func (r *Reserve) CanConfirm() bool {
	return !r.Confirmed && r.Status.IsConfirmable()
}

// Normalize приводит поля к инвариантам статуса: у отсутствия время и точка
// фиксированы, у обычного резерва нет даты окончания
func (r *Reserve) Normalize() {
	if r.Status.IsAbsence() {
		r.TimeFrom = AbsenceTimeFrom
		r.TimeTo = AbsenceTimeTo
		r.Location = LocationOwnPoints
		r.Repeat = false
		r.RepeatDays = nil
		r.RepeatUntil = nil
		return
	}
	r.DateTo = nil
}

// Occurrence копия повторяющегося резерва на другую дату
func (r *Reserve) Occurrence(date string) *Reserve {
	seriesID := r.ID
	return &Reserve{
		UserID:   r.UserID,
		Date:     date,
		TimeFrom: r.TimeFrom,
		TimeTo:   r.TimeTo,
		Status:   r.Status,
		Location: r.Location,
		Comment:  r.Comment,
		SeriesID: &seriesID,
	}
}

// ReservePatch частичное обновление резерва
type ReservePatch struct {
	Date        *string
	DateTo      **string
	TimeFrom    *string
	TimeTo      *string
	Status      *ReserveStatus
	Location    *Location
	Repeat      *bool
	RepeatDays  *[]int
	RepeatUntil **string
	Comment     **string
}

// IsEmpty нет ни одного изменённого поля
func (p ReservePatch) IsEmpty() bool {
	return p.Date == nil && p.DateTo == nil && p.TimeFrom == nil && p.TimeTo == nil &&
		p.Status == nil && p.Location == nil && p.Repeat == nil && p.RepeatDays == nil &&
		p.RepeatUntil == nil && p.Comment == nil
}
