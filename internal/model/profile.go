package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

// Profile курьер или куратор
type Profile struct {
	ID             uuid.UUID `json:"id"`
	Email          *string   `json:"email"`
	Name           *string   `json:"name"`
	Role           Role      `json:"role"`
	TelegramChatID *int64    `json:"telegramChatId,omitempty"` // для уведомлений о подтверждении
	CreatedAt      time.Time `json:"createdAt"`
}

// IsAdmin проверяет роль куратора
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
