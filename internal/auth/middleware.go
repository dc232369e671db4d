package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"go.uber.org/zap"
)

type contextKey string

const profileContextKey contextKey = "profile"

// Authenticator находит профиль по токену.
// (nil, nil) означает, что токен не принят.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*model.Profile, error)
}

// WithProfile кладёт профиль в контекст
func WithProfile(ctx context.Context, p *model.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

// ProfileFromContext профиль текущего пользователя
func ProfileFromContext(ctx context.Context) (*model.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(*model.Profile)
	return p, ok && p != nil
}

// BearerToken достаёт токен из заголовка Authorization
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// Middleware проверка токена и роли для HTTP
type Middleware struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewMiddleware(auth Authenticator, logger *zap.Logger) *Middleware {
	return &Middleware{auth: auth, logger: logger}
}

// Resolve профиль автора запроса; (nil, nil) если он не аутентифицирован
func (m *Middleware) Resolve(r *http.Request) (*model.Profile, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, nil
	}
	return m.auth.CurrentUser(r.Context(), token)
}

// Authenticate пропускает только запросы с действующим токеном
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, err := m.Resolve(r)
		if err != nil {
			m.logger.Error("Failed to resolve current user", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Произошла ошибка")
			return
		}
		if profile == nil {
			writeError(w, http.StatusUnauthorized, "Требуется вход")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), profile)))
	})
}

// RequireAdmin пропускает только кураторов. Ставится после Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := ProfileFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Требуется вход")
			return
		}
		if !profile.IsAdmin() {
			writeError(w, http.StatusForbidden, "Доступно только кураторам")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
