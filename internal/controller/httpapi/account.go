package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/Freeeeeet/courier_scheduler/internal/service"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// createdCourier ответ создания курьера
type createdCourier struct {
	ID    string     `json:"id"`
	Email *string    `json:"email"`
	Name  *string    `json:"name"`
	Role  model.Role `json:"role"`
}

// createCourier POST /api/create-courier
// 400 пустые поля, 401 без токена, 403 не куратор, 400 с текстом при ошибке создания
func (h *Handler) createCourier(w http.ResponseWriter, r *http.Request) {
	var req service.NewCourier
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, service.ErrorMessage(service.ErrMissingFields))
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, service.ErrorMessage(service.ErrMissingFields))
		return
	}

	caller, err := h.mw.Resolve(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if caller == nil {
		writeError(w, http.StatusUnauthorized, service.ErrorMessage(service.ErrUnauthenticated))
		return
	}
	if !caller.IsAdmin() {
		writeError(w, http.StatusForbidden, service.ErrorMessage(service.ErrNotAdmin))
		return
	}

	profile, err := h.couriers.Create(r.Context(), caller.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin), errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusForbidden, service.ErrorMessage(service.ErrNotAdmin))
		case statusFor(err) == http.StatusBadRequest:
			writeError(w, http.StatusBadRequest, service.ErrorMessage(err))
		default:
			h.logger.Error("Failed to create courier", zap.Error(err))
			writeError(w, http.StatusBadRequest, "Не удалось создать пользователя")
		}
		return
	}

	writeJSON(w, http.StatusOK, createdCourier{
		ID:    profile.ID.String(),
		Email: profile.Email,
		Name:  profile.Name,
		Role:  profile.Role,
	})
}

// telegramRequest код из ответа бота на /start; null отвязывает чат
type telegramRequest struct {
	Code *string `json:"code"`
}

func (h *Handler) linkTelegram(w http.ResponseWriter, r *http.Request) {
	var req telegramRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.couriers.LinkTelegram(r.Context(), currentProfile(r).ID, req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
