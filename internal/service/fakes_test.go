package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
)

// memStore хранилище в памяти с теми же контрактами, что и репозитории
type memStore struct {
	mu         sync.Mutex
	profiles   map[uuid.UUID]*model.Profile
	identities map[string]*repository.Identity
	shifts     map[uuid.UUID]*model.Shift
	reserves   map[uuid.UUID]*model.Reserve

	listErr      error
	shiftFilters []model.ListFilter
}

func newMemStore() *memStore {
	return &memStore{
		profiles:   make(map[uuid.UUID]*model.Profile),
		identities: make(map[string]*repository.Identity),
		shifts:     make(map[uuid.UUID]*model.Shift),
		reserves:   make(map[uuid.UUID]*model.Reserve),
	}
}

func (m *memStore) addProfile(role model.Role, name string) *model.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &model.Profile{ID: uuid.New(), Role: role}
	if name != "" {
		p.Name = &name
	}
	m.profiles[p.ID] = p
	return p
}

func (m *memStore) shiftCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shifts)
}

// profiles

type memProfiles struct{ *memStore }

func (s memProfiles) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s memProfiles) List(ctx context.Context) ([]*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*model.Profile
	for _, p := range s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s memProfiles) UpdateName(ctx context.Context, id uuid.UUID, name *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Name = name
	return nil
}

func (s memProfiles) SetTelegramChatID(ctx context.Context, id uuid.UUID, chatID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	if chatID != nil {
		for _, other := range s.profiles {
			if other.ID != id && other.TelegramChatID != nil && *other.TelegramChatID == *chatID {
				return repository.ErrChatTaken
			}
		}
	}
	p.TelegramChatID = chatID
	return nil
}

func (s memProfiles) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.TelegramChatID != nil && *p.TelegramChatID == chatID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// identities

type memIdentities struct{ *memStore }

func (s memIdentities) GetByEmail(ctx context.Context, email string) (*repository.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.identities[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	return identity, nil
}

func (s memIdentities) CreateWithProfile(ctx context.Context, email, passwordHash string, name *string, role model.Role) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.identities[key]; ok {
		return nil, repository.ErrEmailTaken
	}
	id := uuid.New()
	s.identities[key] = &repository.Identity{ID: id, Email: email, PasswordHash: passwordHash}
	p := &model.Profile{ID: id, Email: &email, Name: name, Role: role, CreatedAt: time.Now()}
	s.profiles[id] = p
	cp := *p
	return &cp, nil
}

// shifts

type memShifts struct{ *memStore }

func matches(filter model.ListFilter, userID uuid.UUID, date string) bool {
	if filter.UserID != nil && *filter.UserID != userID {
		return false
	}
	if filter.Year != 0 && !strings.HasPrefix(date, calendar.MonthPrefix(filter.Year, filter.Month)) {
		return false
	}
	return true
}

func (s memShifts) List(ctx context.Context, filter model.ListFilter) ([]*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shiftFilters = append(s.shiftFilters, filter)
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*model.Shift
	for _, sh := range s.shifts {
		if matches(filter, sh.UserID, sh.Date) {
			cp := *sh
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s memShifts) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}

func (s memShifts) insert(shift *model.Shift) {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	cp := *shift
	s.shifts[shift.ID] = &cp
}

func (s memShifts) Create(ctx context.Context, shift *model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(shift)
	return nil
}

func (s memShifts) CreateBatch(ctx context.Context, shifts []*model.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range shifts {
		s.insert(sh)
	}
	return nil
}

func (s memShifts) Update(ctx context.Context, id uuid.UUID, patch model.ShiftPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shifts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Date != nil {
		sh.Date = *patch.Date
	}
	if patch.TimeFrom != nil {
		sh.TimeFrom = *patch.TimeFrom
	}
	if patch.TimeTo != nil {
		sh.TimeTo = *patch.TimeTo
	}
	if patch.WorkplaceID != nil {
		sh.WorkplaceID = *patch.WorkplaceID
	}
	if patch.Repeat != nil {
		sh.Repeat = *patch.Repeat
	}
	if patch.RepeatDays != nil {
		sh.RepeatDays = *patch.RepeatDays
	}
	if patch.RepeatUntil != nil {
		sh.RepeatUntil = *patch.RepeatUntil
	}
	return nil
}

func (s memShifts) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.shifts, id)
	return nil
}

// reserves

type memReserves struct {
	*memStore
	confirmErr error
}

func (s memReserves) List(ctx context.Context, filter model.ListFilter) ([]*model.Reserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*model.Reserve
	for _, r := range s.reserves {
		if matches(filter, r.UserID, r.Date) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s memReserves) GetByID(ctx context.Context, id uuid.UUID) (*model.Reserve, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s memReserves) insert(r *model.Reserve) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	s.reserves[r.ID] = &cp
}

func (s memReserves) Create(ctx context.Context, reserve *model.Reserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(reserve)
	return nil
}

func (s memReserves) CreateBatch(ctx context.Context, reserves []*model.Reserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reserves {
		s.insert(r)
	}
	return nil
}

func (s memReserves) Update(ctx context.Context, id uuid.UUID, patch model.ReservePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[id]
	if !ok || r.Confirmed {
		return repository.ErrNotFound
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.DateTo != nil {
		r.DateTo = *patch.DateTo
	}
	if patch.TimeFrom != nil {
		r.TimeFrom = *patch.TimeFrom
	}
	if patch.TimeTo != nil {
		r.TimeTo = *patch.TimeTo
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Location != nil {
		r.Location = *patch.Location
	}
	if patch.Repeat != nil {
		r.Repeat = *patch.Repeat
	}
	if patch.RepeatDays != nil {
		r.RepeatDays = *patch.RepeatDays
	}
	if patch.RepeatUntil != nil {
		r.RepeatUntil = *patch.RepeatUntil
	}
	if patch.Comment != nil {
		r.Comment = *patch.Comment
	}
	return nil
}

func (s memReserves) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reserves[id]
	if !ok || r.Confirmed {
		return repository.ErrNotFound
	}
	delete(s.reserves, id)
	return nil
}

// Confirm атомарен под общей блокировкой, как транзакция репозитория
func (s memReserves) Confirm(ctx context.Context, reserveID, adminID uuid.UUID, at time.Time) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	r, ok := s.reserves[reserveID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.Confirmed {
		return nil, repository.ErrAlreadyConfirmed
	}
	if !r.Status.IsConfirmable() {
		return nil, repository.ErrNotConfirmable
	}
	for _, sh := range s.shifts {
		if sh.SourceReserveID != nil && *sh.SourceReserveID == reserveID {
			return nil, repository.ErrAlreadyConfirmed
		}
	}

	sourceID := r.ID
	shift := &model.Shift{
		ID:               uuid.New(),
		UserID:           r.UserID,
		Date:             r.Date,
		TimeFrom:         r.TimeFrom,
		TimeTo:           r.TimeTo,
		ConfirmedByAdmin: true,
		SourceReserveID:  &sourceID,
	}
	cp := *shift
	s.shifts[shift.ID] = &cp

	r.Confirmed = true
	r.ConfirmedBy = &adminID
	r.ConfirmedAt = &at
	r.ConfirmedShiftID = &shift.ID

	return shift, nil
}

// notifier

type recordingNotifier struct {
	mu    sync.Mutex
	calls []*model.Shift
	err   error
}

func (n *recordingNotifier) ReserveConfirmed(ctx context.Context, courier *model.Profile, reserve *model.Reserve, shift *model.Shift) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, shift)
	return n.err
}

var errStorage = errors.New("storage unavailable")
