package model

import "github.com/google/uuid"

// ListFilter фильтр выборки выходов и резервов
type ListFilter struct {
	UserID *uuid.UUID
	Year   int // 0 = все месяцы
	Month  int
}

// ForUser фильтр по одному курьеру
func ForUser(id uuid.UUID) ListFilter {
	return ListFilter{UserID: &id}
}

// ForUserMonth фильтр по курьеру за один месяц
func ForUserMonth(id uuid.UUID, year, month int) ListFilter {
	return ListFilter{UserID: &id, Year: year, Month: month}
}
