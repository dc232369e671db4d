package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/formatting"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BoardQuery выбранные месяц, день и вкладка
type BoardQuery struct {
	Year     int
	Month    int
	Selected string
	Tab      schedule.Tab
}

// Dashboard панель куратора
type Dashboard struct {
	Stats       schedule.Stats        `json:"stats"`
	Tab         schedule.Tab          `json:"tab"`
	Grid        schedule.MonthGrid    `json:"grid"`
	ShiftDays   []schedule.ShiftDay   `json:"shiftDays,omitempty"`
	ReserveDays []schedule.ReserveDay `json:"reserveDays,omitempty"`
	Couriers    []CourierEntry        `json:"couriers"`
}

// CourierEntry строка списка курьеров
type CourierEntry struct {
	*model.Profile
	DisplayName string `json:"displayName"`
}

// CourierSchedule страница курьера
type CourierSchedule struct {
	Profile     *model.Profile        `json:"profile"`
	Tab         schedule.Tab          `json:"tab"`
	Grid        schedule.MonthGrid    `json:"grid"`
	Selected    string                `json:"selected"`
	Header      string                `json:"header,omitempty"`
	ShiftDays   []schedule.ShiftDay   `json:"shiftDays,omitempty"`
	ReserveDays []schedule.ReserveDay `json:"reserveDays,omitempty"`
	Workplaces  []model.Workplace     `json:"workplaces"`
	TimeOptions []string              `json:"timeOptions"`
}

type BoardService struct {
	profileRepo ProfileStore
	shiftRepo   ShiftStore
	reserveRepo ReserveStore
	workplaces  []model.Workplace
	logger      *zap.Logger
}

func NewBoardService(
	profileRepo ProfileStore,
	shiftRepo ShiftStore,
	reserveRepo ReserveStore,
	workplaces []model.Workplace,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		profileRepo: profileRepo,
		shiftRepo:   shiftRepo,
		reserveRepo: reserveRepo,
		workplaces:  workplaces,
		logger:      logger,
	}
}

// Workplaces справочник точек
func (s *BoardService) Workplaces() []model.Workplace {
	return s.workplaces
}

// AdminDashboard все выходы и резервы по дням. Статистика считается по всем
// записям, поэтому выборка не ограничивается месяцем. Если не удалась любая из
// загрузок, возвращается ErrLoadFailed и панель не строится.
func (s *BoardService) AdminDashboard(ctx context.Context, adminID uuid.UUID, q BoardQuery) (*Dashboard, error) {
	if _, err := requireAdmin(ctx, s.profileRepo, adminID); err != nil {
		return nil, err
	}

	board, err := schedule.Load(ctx, s.sources(true), model.ListFilter{})
	if err != nil {
		s.logger.Error("Failed to load dashboard", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	q = s.normalize(q)
	opts := schedule.ViewOptions{Selected: q.Selected}

	d := &Dashboard{
		Stats: board.Stats(),
		Tab:   q.Tab,
		Grid:  board.MonthGrid(q.Tab, q.Year, q.Month, q.Selected),
	}
	if q.Tab == schedule.TabReserve {
		d.ReserveDays = board.ReserveDays(opts)
	} else {
		d.ShiftDays = board.ShiftDays(opts)
	}
	for _, p := range board.Profiles {
		d.Couriers = append(d.Couriers, CourierEntry{Profile: p, DisplayName: formatting.CourierName(p)})
	}

	return d, nil
}

// CourierSchedule календарь и записи курьера за месяц
func (s *BoardService) CourierSchedule(ctx context.Context, userID uuid.UUID, q BoardQuery) (*CourierSchedule, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	q = s.normalize(q)

	board, err := schedule.Load(ctx, s.sources(false), model.ForUserMonth(userID, q.Year, q.Month))
	if err != nil {
		s.logger.Error("Failed to load courier schedule",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	board = schedule.NewBoard([]*model.Profile{profile}, board.Shifts, board.Reserves, s.workplaces)

	opts := schedule.ViewOptions{Year: q.Year, Month: q.Month, Selected: q.Selected}

	cs := &CourierSchedule{
		Profile:     profile,
		Tab:         q.Tab,
		Grid:        board.MonthGrid(q.Tab, q.Year, q.Month, q.Selected),
		Selected:    q.Selected,
		Workplaces:  s.workplaces,
		TimeOptions: calendar.TimeOptions(),
	}
	if q.Selected != "" {
		cs.Header = formatting.FormatDateHeader(q.Selected)
	}
	if q.Tab == schedule.TabReserve {
		cs.ReserveDays = board.ReserveDays(opts)
	} else {
		cs.ShiftDays = board.ShiftDays(opts)
	}

	return cs, nil
}

func (s *BoardService) sources(withProfiles bool) schedule.Sources {
	src := schedule.Sources{
		Shifts:     s.shiftRepo,
		Reserves:   s.reserveRepo,
		Workplaces: s.workplaces,
	}
	if withProfiles {
		src.Profiles = s.profileRepo
	}
	return src
}

// normalize подставляет текущий месяц и вкладку выходов
func (s *BoardService) normalize(q BoardQuery) BoardQuery {
	if q.Year == 0 || q.Month < 1 || q.Month > 12 {
		now := time.Now()
		q.Year, q.Month = now.Year(), int(now.Month())
	}
	if q.Tab != schedule.TabReserve {
		q.Tab = schedule.TabShifts
	}
	return q
}
