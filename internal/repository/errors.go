package repository

import "errors"

var (
	// ErrNotFound запись не найдена при обновлении или удалении
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyConfirmed резерв уже подтверждён или выход по нему уже создан
	ErrAlreadyConfirmed = errors.New("reserve already confirmed")
	// ErrNotConfirmable статус резерва не допускает подтверждения
	ErrNotConfirmable = errors.New("reserve status is not confirmable")
	// ErrEmailTaken пользователь с таким email уже существует
	ErrEmailTaken = errors.New("identity with this email already exists")
	// ErrChatTaken чат Telegram уже привязан к другому профилю
	ErrChatTaken = errors.New("telegram chat already linked")
)
