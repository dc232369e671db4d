package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/auth"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

type CourierAPI interface {
	ListCouriers(ctx context.Context, adminID uuid.UUID) ([]*model.Profile, error)
	Rename(ctx context.Context, adminID, courierID uuid.UUID, name string) (*model.Profile, error)
	Create(ctx context.Context, adminID uuid.UUID, in service.NewCourier) (*model.Profile, error)
	LinkTelegram(ctx context.Context, userID uuid.UUID, code *string) (*model.Profile, error)
}

type ShiftAPI interface {
	CreateShift(ctx context.Context, userID uuid.UUID, in service.ShiftInput) ([]*model.Shift, error)
	UpdateShift(ctx context.Context, userID, shiftID uuid.UUID, in service.ShiftInput) (*model.Shift, error)
	DeleteShift(ctx context.Context, userID, shiftID uuid.UUID) error
}

type ReserveAPI interface {
	CreateReserve(ctx context.Context, userID uuid.UUID, in service.ReserveInput) ([]*model.Reserve, error)
	UpdateReserve(ctx context.Context, userID, reserveID uuid.UUID, in service.ReserveInput) (*model.Reserve, error)
	DeleteReserve(ctx context.Context, userID, reserveID uuid.UUID) error
	Confirm(ctx context.Context, reserveID, adminID uuid.UUID) (*service.ConfirmResult, error)
}

type BoardAPI interface {
	AdminDashboard(ctx context.Context, adminID uuid.UUID, q service.BoardQuery) (*service.Dashboard, error)
	CourierSchedule(ctx context.Context, userID uuid.UUID, q service.BoardQuery) (*service.CourierSchedule, error)
	Workplaces() []model.Workplace
}

// Deps зависимости HTTP слоя
type Deps struct {
	Auth       AuthAPI
	Couriers   CourierAPI
	Shifts     ShiftAPI
	Reserves   ReserveAPI
	Board      BoardAPI
	Middleware *auth.Middleware
	Logger     *zap.Logger
}

type Handler struct {
	auth     AuthAPI
	couriers CourierAPI
	shifts   ShiftAPI
	reserves ReserveAPI
	board    BoardAPI
	mw       *auth.Middleware
	logger   *zap.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		auth:     d.Auth,
		couriers: d.Couriers,
		shifts:   d.Shifts,
		reserves: d.Reserves,
		board:    d.Board,
		mw:       d.Middleware,
		logger:   d.Logger,
	}
}

// Routes собирает маршруты API
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	authed := func(f http.HandlerFunc) http.Handler {
		return h.mw.Authenticate(f)
	}
	admin := func(f http.HandlerFunc) http.Handler {
		return h.mw.Authenticate(h.mw.RequireAdmin(f))
	}

	mux.HandleFunc("POST /api/login", h.login)
	// сам проверяет токен: сначала отвечает про пустые поля
	mux.HandleFunc("POST /api/create-courier", h.createCourier)
	mux.HandleFunc("GET /api/workplaces", h.workplaces)

	mux.Handle("GET /api/me/schedule", authed(h.mySchedule))
	mux.Handle("PUT /api/me/telegram", authed(h.linkTelegram))

	mux.Handle("POST /api/shifts", authed(h.createShift))
	mux.Handle("PATCH /api/shifts/{id}", authed(h.updateShift))
	mux.Handle("DELETE /api/shifts/{id}", authed(h.deleteShift))

	mux.Handle("POST /api/reserves", authed(h.createReserve))
	mux.Handle("PATCH /api/reserves/{id}", authed(h.updateReserve))
	mux.Handle("DELETE /api/reserves/{id}", authed(h.deleteReserve))

	mux.Handle("GET /api/admin/dashboard", admin(h.dashboard))
	mux.Handle("GET /api/admin/couriers", admin(h.listCouriers))
	mux.Handle("PATCH /api/admin/couriers/{id}", admin(h.renameCourier))
	mux.Handle("POST /api/admin/reserves/{id}/confirm", admin(h.confirmReserve))

	return h.logRequests(limitBody(mux))
}

// maxBodyBytes предел тела запроса
const maxBodyBytes = 64 << 10

var errBodyTooLarge = errors.New("request body too large")

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail отвечает ошибкой сервиса с подходящим статусом
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Слишком большой запрос")
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeError(w, status, service.ErrorMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownWorkplace),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrIdentityExists),
		errors.Is(err, service.ErrChatLinked),
		errors.Is(err, service.ErrInvalidLinkCode):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin),
		errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrShiftNotFound),
		errors.Is(err, service.ErrReserveNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrReserveConfirmed),
		errors.Is(err, service.ErrNotConfirmable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return service.ErrInvalidInput
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, service.ErrInvalidInput
	}
	return id, nil
}

// currentProfile профиль, положенный в контекст Authenticate
func currentProfile(r *http.Request) *model.Profile {
	p, _ := auth.ProfileFromContext(r.Context())
	return p
}
