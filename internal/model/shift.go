package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift запланированный выход курьера.
// TimeTo может быть меньше TimeFrom: смена переходит через полночь.
type Shift struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"userId"`
	Date             string     `json:"date"`     // YYYY-MM-DD
	TimeFrom         string     `json:"timeFrom"` // HH:MM
	TimeTo           string     `json:"timeTo"`   // HH:MM
	WorkplaceID      *string    `json:"workplaceId"`
	Repeat           bool       `json:"repeat"`
	RepeatDays       []int      `json:"repeatDays"` // 0 = воскресенье
	RepeatUntil      *string    `json:"repeatUntil"`
	ConfirmedByAdmin bool       `json:"confirmedByAdmin"`
	SourceReserveID  *uuid.UUID `json:"sourceReserveId,omitempty"` // резерв, из которого создан выход
	SeriesID         *uuid.UUID `json:"seriesId,omitempty"`        // исходная запись повторения
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// RecordDate дата записи для группировки
func (s *Shift) RecordDate() string {
	return s.Date
}

// RecordTime время начала для сортировки внутри дня
func (s *Shift) RecordTime() string {
	return s.TimeFrom
}

// Occurrence копия повторяющегося выхода на другую дату
func (s *Shift) Occurrence(date string) *Shift {
	seriesID := s.ID
	occ := &Shift{
		UserID:      s.UserID,
		Date:        date,
		TimeFrom:    s.TimeFrom,
		TimeTo:      s.TimeTo,
		WorkplaceID: s.WorkplaceID,
		SeriesID:    &seriesID,
	}
	return occ
}

// ShiftPatch частичное обновление выхода; nil означает "не менять"
type ShiftPatch struct {
	Date        *string
	TimeFrom    *string
	TimeTo      *string
	WorkplaceID **string
	Repeat      *bool
	RepeatDays  *[]int
	RepeatUntil **string
}

// IsEmpty нет ни одного изменённого поля
func (p ShiftPatch) IsEmpty() bool {
	return p.Date == nil && p.TimeFrom == nil && p.TimeTo == nil && p.WorkplaceID == nil &&
		p.Repeat == nil && p.RepeatDays == nil && p.RepeatUntil == nil
}
