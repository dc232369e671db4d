package schedule

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/formatting"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ProfileLister interface {
	List(ctx context.Context) ([]*model.Profile, error)
}

type ShiftLister interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Shift, error)
}

type ReserveLister interface {
	List(ctx context.Context, filter model.ListFilter) ([]*model.Reserve, error)
}

// Sources источники данных доски. Profiles может быть nil: тогда имена курьеров не подгружаются.
type Sources struct {
	Profiles   ProfileLister
	Shifts     ShiftLister
	Reserves   ReserveLister
	Workplaces []model.Workplace
}

// Board набор записей одной области видимости (один курьер или все).
// Представления всегда пересчитываются из исходных записей.
type Board struct {
	Profiles []*model.Profile
	Shifts   []*model.Shift
	Reserves []*model.Reserve

	profiles   map[uuid.UUID]*model.Profile
	workplaces map[string]model.Workplace
}

// Load загружает профили, выходы и резервы параллельно.
// Ошибка любой из загрузок отменяет всю загрузку: частичной доски не бывает.
func Load(ctx context.Context, src Sources, filter model.ListFilter) (*Board, error) {
	var (
		profiles []*model.Profile
		shifts   []*model.Shift
		reserves []*model.Reserve
	)

	g, gctx := errgroup.WithContext(ctx)

	if src.Profiles != nil {
		g.Go(func() error {
			var err error
			profiles, err = src.Profiles.List(gctx)
			if err != nil {
				return fmt.Errorf("load profiles: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		var err error
		shifts, err = src.Shifts.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("load shifts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		reserves, err = src.Reserves.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("load reserves: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewBoard(profiles, shifts, reserves, src.Workplaces), nil
}

// NewBoard собирает доску из уже загруженных записей
func NewBoard(profiles []*model.Profile, shifts []*model.Shift, reserves []*model.Reserve, workplaces []model.Workplace) *Board {
	b := &Board{
		Profiles:   profiles,
		Shifts:     SortByDate(shifts),
		Reserves:   SortByDate(reserves),
		profiles:   make(map[uuid.UUID]*model.Profile, len(profiles)),
		workplaces: make(map[string]model.Workplace, len(workplaces)),
	}
	for _, p := range profiles {
		b.profiles[p.ID] = p
	}
	for _, w := range workplaces {
		b.workplaces[w.ID] = w
	}
	return b
}

// CourierName отображаемое имя владельца записи
func (b *Board) CourierName(userID uuid.UUID) string {
	return formatting.CourierName(b.profiles[userID])
}

// Stats счётчики панели куратора
type Stats struct {
	Couriers int    `json:"couriers"`
	Shifts   int    `json:"shifts"`
	Reserves int    `json:"reserves"`
	Summary  string `json:"summary"`
}

// Stats курьеров считаем по всем профилям, кроме кураторов
func (b *Board) Stats() Stats {
	couriers := 0
	for _, p := range b.Profiles {
		if p.Role != model.RoleAdmin {
			couriers++
		}
	}
	return Stats{
		Couriers: couriers,
		Shifts:   len(b.Shifts),
		Reserves: len(b.Reserves),
		Summary: fmt.Sprintf("%d %s, %d %s, %d %s",
			couriers, formatting.PluralizeCouriers(couriers),
			len(b.Shifts), formatting.PluralizeShifts(len(b.Shifts)),
			len(b.Reserves), formatting.PluralizeReserves(len(b.Reserves)),
		),
	}
}

// ViewOptions выбранный месяц и день. Нулевой Year означает все месяцы.
type ViewOptions struct {
	Year     int
	Month    int
	Selected string
}

func (o ViewOptions) shifts(all []*model.Shift) []*model.Shift {
	if o.Year != 0 {
		all = FilterByMonthPrefix(all, o.Year, o.Month)
	}
	if o.Selected != "" {
		all = FilterByDate(all, o.Selected)
	}
	return all
}

func (o ViewOptions) reserves(all []*model.Reserve) []*model.Reserve {
	if o.Year != 0 {
		all = FilterByMonthPrefix(all, o.Year, o.Month)
	}
	if o.Selected != "" {
		all = FilterByDate(all, o.Selected)
	}
	return all
}

// ShiftView выход с производными полями для отображения
type ShiftView struct {
	*model.Shift
	CourierName string           `json:"courierName"`
	Duration    string           `json:"duration"`
	Workplace   *model.Workplace `json:"workplace,omitempty"`
}

// ShiftDay выходы одного дня
type ShiftDay struct {
	Date   string      `json:"date"`
	Header string      `json:"header"`
	Shifts []ShiftView `json:"shifts"`
}

// ShiftDays выходы, сгруппированные по дням в хронологическом порядке
func (b *Board) ShiftDays(opts ViewOptions) []ShiftDay {
	grouped := GroupByDate(opts.shifts(b.Shifts))
	days := make([]ShiftDay, 0, len(grouped))
	for _, date := range SortedDateKeys(grouped) {
		day := ShiftDay{Date: date, Header: formatting.FormatDateHeader(date)}
		for _, s := range grouped[date] {
			view := ShiftView{
				Shift:       s,
				CourierName: b.CourierName(s.UserID),
				Duration:    formatting.CalcDuration(s.TimeFrom, s.TimeTo),
			}
			if s.WorkplaceID != nil {
				if w, ok := b.workplaces[*s.WorkplaceID]; ok {
					view.Workplace = &w
				}
			}
			day.Shifts = append(day.Shifts, view)
		}
		days = append(days, day)
	}
	return days
}

// ReserveView резерв с подписями
type ReserveView struct {
	*model.Reserve
	CourierName   string             `json:"courierName"`
	StatusLabel   string             `json:"statusLabel"`
	LocationLabel string             `json:"locationLabel"`
	State         model.ReserveState `json:"state"`
	CanConfirm    bool               `json:"canConfirm"`
}

// ReserveDay резервы одного дня
type ReserveDay struct {
	Date     string        `json:"date"`
	Header   string        `json:"header"`
	Reserves []ReserveView `json:"reserves"`
}

// ReserveDays резервы, сгруппированные по дням
func (b *Board) ReserveDays(opts ViewOptions) []ReserveDay {
	grouped := GroupByDate(opts.reserves(b.Reserves))
	days := make([]ReserveDay, 0, len(grouped))
	for _, date := range SortedDateKeys(grouped) {
		day := ReserveDay{Date: date, Header: formatting.FormatDateHeader(date)}
		for _, r := range grouped[date] {
			day.Reserves = append(day.Reserves, ReserveView{
				Reserve:       r,
				CourierName:   b.CourierName(r.UserID),
				StatusLabel:   formatting.StatusLabel(r.Status),
				LocationLabel: formatting.LocationLabel(r.Location),
				State:         r.State(),
				CanConfirm:    r.CanConfirm(),
			})
		}
		days = append(days, day)
	}
	return days
}

// Tab вкладка календаря
type Tab string

const (
	TabShifts  Tab = "shifts"
	TabReserve Tab = "reserve"
)

// MonthGrid сетка месяца для вкладки: на выходах счётчики, на резервах точки статусов
func (b *Board) MonthGrid(tab Tab, year, month int, selected string) MonthGrid {
	if tab == TabReserve {
		reserves := FilterByMonthPrefix(b.Reserves, year, month)
		return BuildMonthGrid(year, month, selected, nil, ReserveStatusSetByDate(reserves))
	}
	shifts := FilterByMonthPrefix(b.Shifts, year, month)
	return BuildMonthGrid(year, month, selected, ShiftCountByDate(shifts), nil)
}
