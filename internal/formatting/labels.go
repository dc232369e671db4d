package formatting

import (
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

var statusLabels = map[model.ReserveStatus]string{
	model.StatusCan:       "Могу",
	model.StatusIfNeeded:  "При необходимости",
	model.StatusCannot:    "Не могу",
	model.StatusVacation:  "Отпуск",
	model.StatusSickLeave: "Больничный",
}

var locationLabels = map[model.Location]string{
	model.LocationOwnPoints: "Только в своих точках",
	model.LocationWholeCity: "По всему городу",
}

// StatusLabel подпись статуса; неизвестный статус отображается как есть
func StatusLabel(status model.ReserveStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// LocationLabel подпись локации; неизвестное значение отображается как есть
func LocationLabel(location model.Location) string {
	if label, ok := locationLabels[location]; ok {
		return label
	}
	return string(location)
}

// CourierName отображаемое имя: имя, иначе часть email до @, иначе "Курьер"
func CourierName(p *model.Profile) string {
	if p == nil {
		return "Курьер"
	}
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	if p.Email != nil && *p.Email != "" {
		return strings.SplitN(*p.Email, "@", 2)[0]
	}
	return "Курьер"
}
