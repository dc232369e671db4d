package schedule

import (
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/formatting"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

// CellState как отрисовать день в календаре
type CellState string

const (
	CellPlain    CellState = "plain"
	CellHasData  CellState = "has_data"
	CellSelected CellState = "selected"
)

// ClassifyCell выбранный день важнее наличия данных
func ClassifyCell(date, selected string, count int, statuses []model.ReserveStatus) CellState {
	if selected != "" && date == selected {
		return CellSelected
	}
	if count > 0 || len(statuses) > 0 {
		return CellHasData
	}
	return CellPlain
}

// Cell клетка сетки месяца. Day == 0 у пустых клеток перед первым числом.
type Cell struct {
	Day        int                   `json:"day"`
	Date       string                `json:"date,omitempty"`
	State      CellState             `json:"state,omitempty"`
	ShiftCount int                   `json:"shiftCount,omitempty"`
	Statuses   []model.ReserveStatus `json:"statuses,omitempty"`
}

// MonthGrid сетка месяца на 7 колонок, неделя с понедельника
type MonthGrid struct {
	Year          int      `json:"year"`
	Month         int      `json:"month"`
	Title         string   `json:"title"`
	WeekdayLabels []string `json:"weekdayLabels"`
	Cells         []Cell   `json:"cells"`
}

// BuildMonthGrid строит сетку месяца. counts и statuses могут быть nil.
func BuildMonthGrid(year, month int, selected string, counts map[string]int, statuses map[string][]model.ReserveStatus) MonthGrid {
	offset := calendar.FirstWeekdayOffset(year, month)
	days := calendar.DaysInMonth(year, month)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{})
	}

	prefix := calendar.MonthPrefix(year, month)
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%s-%02d", prefix, day)
		count := counts[date]
		set := statuses[date]
		cells = append(cells, Cell{
			Day:        day,
			Date:       date,
			State:      ClassifyCell(date, selected, count, set),
			ShiftCount: count,
			Statuses:   set,
		})
	}

	return MonthGrid{
		Year:          year,
		Month:         month,
		Title:         formatting.FormatMonthYear(year, month),
		WeekdayLabels: formatting.GridWeekdayLabels(),
		Cells:         cells,
	}
}
