package model

// ReserveStatus статус резерва. Значения вне известного набора не отбрасываются при
// чтении: они сохраняются как есть и отображаются сырым значением.
type ReserveStatus string

const (
	StatusCan       ReserveStatus = "can"
	StatusIfNeeded  ReserveStatus = "if_needed"
	StatusCannot    ReserveStatus = "cannot"
	StatusVacation  ReserveStatus = "vacation"
	StatusSickLeave ReserveStatus = "sick_leave"
)

// KnownStatuses в порядке отображения
var KnownStatuses = []ReserveStatus{
	StatusCan,
	StatusIfNeeded,
	StatusCannot,
	StatusVacation,
	StatusSickLeave,
}

// IsKnown сообщает, входит ли статус в закрытый набор
func (s ReserveStatus) IsKnown() bool {
	switch s {
	case StatusCan, StatusIfNeeded, StatusCannot, StatusVacation, StatusSickLeave:
		return true
	}
	return false
}

// IsAbsence отпуск или больничный
func (s ReserveStatus) IsAbsence() bool {
	return s == StatusVacation || s == StatusSickLeave
}

// IsConfirmable может ли куратор перевести резерв в выход
func (s ReserveStatus) IsConfirmable() bool {
	switch s {
	case StatusCan, StatusIfNeeded:
		return true
	case StatusCannot, StatusVacation, StatusSickLeave:
		return false
	}
	return false
}

// Order позиция статуса при сортировке; неизвестные идут после известных
func (s ReserveStatus) Order() int {
	for i, known := range KnownStatuses {
		if s == known {
			return i
		}
	}
	return len(KnownStatuses)
}

// Location где курьер готов работать
type Location string

const (
	LocationOwnPoints Location = "own_points"
	LocationWholeCity Location = "whole_city"
)

// IsKnown сообщает, входит ли значение в закрытый набор
func (l Location) IsKnown() bool {
	switch l {
	case LocationOwnPoints, LocationWholeCity:
		return true
	}
	return false
}
