package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/courier_scheduler/internal/formatting"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MessageSender часть API бота, нужная для уведомлений
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram шлёт курьеру сообщение о подтверждении резерва
type Telegram struct {
	sender MessageSender
	logger *zap.Logger
}

func NewTelegram(sender MessageSender, logger *zap.Logger) *Telegram {
	return &Telegram{sender: sender, logger: logger}
}

// ReserveConfirmed курьеры без привязанного чата пропускаются
func (t *Telegram) ReserveConfirmed(ctx context.Context, courier *model.Profile, reserve *model.Reserve, shift *model.Shift) error {
	if courier.TelegramChatID == nil {
		t.logger.Debug("Courier has no telegram chat, skipping notification",
			zap.String("courier_id", courier.ID.String()))
		return nil
	}

	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *courier.TelegramChatID,
		Text:   ConfirmationText(reserve, shift),
	})
	if err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}

	t.logger.Info("Confirmation sent",
		zap.String("courier_id", courier.ID.String()),
		zap.String("shift_id", shift.ID.String()),
	)
	return nil
}

// ConfirmationText текст уведомления о подтверждённом резерве
func ConfirmationText(reserve *model.Reserve, shift *model.Shift) string {
	return fmt.Sprintf(
		"✅ Куратор подтвердил ваш резерв\n\n"+
			"📅 %s\n"+
			"🕐 %s — %s (%s)\n"+
			"📍 %s",
		formatting.FormatDateHeader(shift.Date),
		shift.TimeFrom, shift.TimeTo,
		formatting.CalcDuration(shift.TimeFrom, shift.TimeTo),
		formatting.LocationLabel(reserve.Location),
	)
}

// Nop ничего не отправляет; используется без токена бота
type Nop struct{}

func (Nop) ReserveConfirmed(context.Context, *model.Profile, *model.Reserve, *model.Shift) error {
	return nil
}
