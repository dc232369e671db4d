// Package schedule выводит представления расписания из плоских наборов выходов и резервов.
// Все функции чистые: представления пересчитываются из исходных записей при каждом вызове.
package schedule

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

// Dated запись, привязанная к дате
type Dated interface {
	RecordDate() string
	RecordTime() string
}

// SortByDate стабильно сортирует записи по дате, затем по времени начала
func SortByDate[T Dated](records []T) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].RecordDate(), sorted[j].RecordDate()
		if di != dj {
			return di < dj
		}
		return sorted[i].RecordTime() < sorted[j].RecordTime()
	})
	return sorted
}

// GroupByDate группирует записи по точной дате; порядок внутри группы совпадает с входным
func GroupByDate[T Dated](records []T) map[string][]T {
	grouped := make(map[string][]T)
	for _, r := range records {
		date := r.RecordDate()
		grouped[date] = append(grouped[date], r)
	}
	return grouped
}

// SortedDateKeys ключи группировки в хронологическом порядке
func SortedDateKeys[T any](grouped map[string][]T) []string {
	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterByMonthPrefix оставляет записи, дата начала которых попадает в месяц.
// Отсутствие, начавшееся в прошлом месяце, сюда не попадёт.
func FilterByMonthPrefix[T Dated](records []T, year, month int) []T {
	prefix := calendar.MonthPrefix(year, month)
	var filtered []T
	for _, r := range records {
		if strings.HasPrefix(r.RecordDate(), prefix) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterByDate записи на конкретную дату
func FilterByDate[T Dated](records []T, date string) []T {
	var filtered []T
	for _, r := range records {
		if r.RecordDate() == date {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ShiftCountByDate количество выходов на каждую дату
func ShiftCountByDate(shifts []*model.Shift) map[string]int {
	counts := make(map[string]int)
	for _, s := range shifts {
		counts[s.Date]++
	}
	return counts
}

// ReserveStatusSetByDate различные статусы резервов на каждую дату.
// Статусы упорядочены: известные в порядке KnownStatuses, затем неизвестные по алфавиту.
func ReserveStatusSetByDate(reserves []*model.Reserve) map[string][]model.ReserveStatus {
	seen := make(map[string]map[model.ReserveStatus]bool)
	result := make(map[string][]model.ReserveStatus)

	for _, r := range reserves {
		if seen[r.Date] == nil {
			seen[r.Date] = make(map[model.ReserveStatus]bool)
		}
		if seen[r.Date][r.Status] {
			continue
		}
		seen[r.Date][r.Status] = true
		result[r.Date] = append(result[r.Date], r.Status)
	}

	for date := range result {
		statuses := result[date]
		sort.SliceStable(statuses, func(i, j int) bool {
			oi, oj := statuses[i].Order(), statuses[j].Order()
			if oi != oj {
				return oi < oj
			}
			return statuses[i] < statuses[j]
		})
	}

	return result
}
