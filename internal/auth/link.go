package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LinkCodeLifetime срок действия кода привязки чата
const LinkCodeLifetime = 15 * time.Minute

const linkAudience = "telegram-link"

type linkClaims struct {
	ChatID int64 `json:"chat_id"`
	jwt.RegisteredClaims
}

// GenerateLinkCode подписывает код привязки чата. Бот отдаёт его в ответ на /start,
// курьер вводит код в приложении, и чат привязывается к его профилю.
func (m *Manager) GenerateLinkCode(chatID int64) (string, error) {
	now := m.now()
	claims := &linkClaims{
		ChatID: chatID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{linkAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(LinkCodeLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	code, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign link code: %w", err)
	}

	return code, nil
}

// ParseLinkCode проверяет код привязки и возвращает chat id
func (m *Manager) ParseLinkCode(code string) (int64, error) {
	claims := &linkClaims{}
	token, err := jwt.ParseWithClaims(code, claims, m.keyFunc,
		jwt.WithTimeFunc(m.now),
		jwt.WithAudience(linkAudience),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ChatID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.ChatID, nil
}
