package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

type recordingSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (s *recordingSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, params)
	return &models.Message{}, nil
}

func confirmed() (*model.Reserve, *model.Shift) {
	reserve := &model.Reserve{ID: uuid.New(), Date: "2025-11-03", TimeFrom: "09:00", TimeTo: "15:00",
		Status: model.StatusCan, Location: model.LocationOwnPoints, Confirmed: true}
	shift := &model.Shift{ID: uuid.New(), Date: "2025-11-03", TimeFrom: "09:00", TimeTo: "15:00",
		ConfirmedByAdmin: true, SourceReserveID: &reserve.ID}
	return reserve, shift
}

func TestTelegram_ReserveConfirmed(t *testing.T) {
	sender := &recordingSender{}
	n := NewTelegram(sender, zap.NewNop())
	chatID := int64(1001)
	reserve, shift := confirmed()

	err := n.ReserveConfirmed(context.Background(), &model.Profile{ID: uuid.New(), TelegramChatID: &chatID}, reserve, shift)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, chatID, sender.sent[0].ChatID)
	assert.Equal(t, ConfirmationText(reserve, shift), sender.sent[0].Text)
}

func TestTelegram_SkipsUnlinkedCourier(t *testing.T) {
	sender := &recordingSender{}
	n := NewTelegram(sender, zap.NewNop())
	reserve, shift := confirmed()

	require.NoError(t, n.ReserveConfirmed(context.Background(), &model.Profile{ID: uuid.New()}, reserve, shift))
	assert.Empty(t, sender.sent)
}

func TestTelegram_SendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("forbidden: bot was blocked")}
	n := NewTelegram(sender, zap.NewNop())
	chatID := int64(1001)
	reserve, shift := confirmed()

	err := n.ReserveConfirmed(context.Background(), &model.Profile{ID: uuid.New(), TelegramChatID: &chatID}, reserve, shift)
	assert.Error(t, err)
}

func TestConfirmationText(t *testing.T) {
	reserve, shift := confirmed()
	text := ConfirmationText(reserve, shift)

	assert.Contains(t, text, "09:00")
	assert.Contains(t, text, "15:00")
	assert.Contains(t, text, "6ч")
}
