package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken токен не прошёл проверку
var ErrInvalidToken = errors.New("invalid token")

// Claims данные пользователя в токене
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Manager выпускает и проверяет токены доступа
type Manager struct {
	secretKey     []byte
	tokenLifetime time.Duration
	now           func() time.Time
}

// NewManager создаёт менеджер токенов
func NewManager(secretKey string, lifetime time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenLifetime: lifetime,
		now:           time.Now,
	}
}

// GenerateToken подписывает токен HS256 для пользователя
func (m *Manager) GenerateToken(userID uuid.UUID, role string) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	// код привязки чата подписан тем же ключом, но пользователя в нём нет
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (m *Manager) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return m.secretKey, nil
}
