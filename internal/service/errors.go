package service

import (
	"errors"
)

// Доменные ошибки сервисов
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrNotAdmin           = errors.New("user is not an admin")
	ErrNotOwner           = errors.New("record belongs to another courier")
	ErrShiftNotFound      = errors.New("shift not found")
	ErrReserveNotFound    = errors.New("reserve not found")
	ErrNotConfirmable     = errors.New("reserve status does not allow confirmation")
	ErrAlreadyConfirmed   = errors.New("reserve is already confirmed")
	ErrReserveConfirmed   = errors.New("confirmed reserve cannot be changed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownWorkplace   = errors.New("unknown workplace")
	ErrMissingFields      = errors.New("email and password are required")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrIdentityExists     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrLoadFailed         = errors.New("initial load failed")
	ErrChatLinked         = errors.New("telegram chat linked to another profile")
	ErrInvalidLinkCode    = errors.New("invalid telegram link code")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return "Курьер не найден"
	case errors.Is(err, ErrNotAdmin):
		return "Доступно только кураторам"
	case errors.Is(err, ErrNotOwner):
		return "Нельзя изменять чужие записи"
	case errors.Is(err, ErrShiftNotFound):
		return "Выход не найден"
	case errors.Is(err, ErrReserveNotFound):
		return "Резерв не найден"
	case errors.Is(err, ErrNotConfirmable):
		return "Этот резерв нельзя подтвердить"
	case errors.Is(err, ErrAlreadyConfirmed):
		return "Резерв уже подтверждён"
	case errors.Is(err, ErrReserveConfirmed):
		return "Подтверждённый резерв нельзя изменить или удалить"
	case errors.Is(err, ErrUnknownWorkplace):
		return "Точка не найдена"
	case errors.Is(err, ErrInvalidInput):
		return "Заполните все поля корректно"
	case errors.Is(err, ErrMissingFields):
		return "Email и пароль обязательны"
	case errors.Is(err, ErrWeakPassword):
		return "Пароль должен содержать не менее 6 символов"
	case errors.Is(err, ErrInvalidEmail):
		return "Некорректный email"
	case errors.Is(err, ErrIdentityExists):
		return "Пользователь с таким email уже существует"
	case errors.Is(err, ErrInvalidCredentials):
		return "Неверный email или пароль"
	case errors.Is(err, ErrUnauthenticated):
		return "Требуется вход"
	case errors.Is(err, ErrChatLinked):
		return "Этот чат уже привязан к другому профилю"
	case errors.Is(err, ErrInvalidLinkCode):
		return "Код привязки недействителен или устарел. Отправьте боту /start ещё раз."
	case errors.Is(err, ErrLoadFailed):
		return "Ошибка загрузки данных. Убедитесь, что созданы нужные таблицы."
	default:
		return "Произошла ошибка"
	}
}
