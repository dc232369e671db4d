package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/courier_scheduler/internal/auth"
	"github.com/Freeeeeet/courier_scheduler/internal/calendar"
	"github.com/Freeeeeet/courier_scheduler/internal/formatting"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// upcomingLimit сколько ближайших выходов показывает /shifts
const upcomingLimit = 10

// ChatProfiles поиск профиля по чату
type ChatProfiles interface {
	ByTelegramChat(ctx context.Context, chatID int64) (*model.Profile, error)
}

// CourierShifts выходы курьера
type CourierShifts interface {
	GetCourierShifts(ctx context.Context, userID uuid.UUID) ([]*model.Shift, error)
}

// LinkCodeIssuer выдаёт коды привязки чата
type LinkCodeIssuer interface {
	GenerateLinkCode(chatID int64) (string, error)
}

type BotController struct {
	bot       *bot.Bot
	profiles  ChatProfiles
	shifts    CourierShifts
	linkCodes LinkCodeIssuer
	now       func() time.Time
	logger    *zap.Logger
}

func NewBotController(botInstance *bot.Bot, profiles ChatProfiles, shifts CourierShifts, linkCodes LinkCodeIssuer, logger *zap.Logger) *BotController {
	return &BotController{
		bot:       botInstance,
		profiles:  profiles,
		shifts:    shifts,
		linkCodes: linkCodes,
		now:       time.Now,
		logger:    logger,
	}
}

// RegisterHandlers регистрирует команды бота
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/shifts", bot.MatchTypeExact, c.HandleShifts)

	return c.setCommands(ctx)
}

func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Получить код привязки"},
		{Command: "shifts", Description: "📅 Мои ближайшие выходы"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает long polling; блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}

// HandleStart выдаёт код привязки, который курьер вводит в приложении
func (c *BotController) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	profile, err := c.profiles.ByTelegramChat(ctx, chatID)
	if err != nil {
		c.logger.Error("Failed to find profile by chat", zap.Int64("chat_id", chatID), zap.Error(err))
	} else if profile != nil {
		c.reply(ctx, b, chatID, fmt.Sprintf("👋 %s, чат уже привязан. Сюда придут подтверждения резервов.\n\n/shifts — ближайшие выходы",
			formatting.CourierName(profile)))
		return
	}

	code, err := c.linkCodes.GenerateLinkCode(chatID)
	if err != nil {
		c.logger.Error("Failed to issue link code", zap.Int64("chat_id", chatID), zap.Error(err))
		c.reply(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	c.reply(ctx, b, chatID, StartText(code))
}

// HandleHelp справка по командам
func (c *BotController) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	c.reply(ctx, b, update.Message.Chat.ID, "📚 Команды:\n\n"+
		"/start — код привязки уведомлений\n"+
		"/shifts — ближайшие выходы\n"+
		"/help — эта справка")
}

// HandleShifts ближайшие выходы привязанного курьера
func (c *BotController) HandleShifts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	profile, err := c.profiles.ByTelegramChat(ctx, chatID)
	if err != nil {
		c.logger.Error("Failed to find profile by chat", zap.Int64("chat_id", chatID), zap.Error(err))
		c.reply(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}
	if profile == nil {
		c.reply(ctx, b, chatID, notLinkedText)
		return
	}

	shifts, err := c.shifts.GetCourierShifts(ctx, profile.ID)
	if err != nil {
		c.logger.Error("Failed to load shifts", zap.String("user_id", profile.ID.String()), zap.Error(err))
		c.reply(ctx, b, chatID, "❌ Не удалось загрузить выходы. Попробуйте позже.")
		return
	}

	c.reply(ctx, b, chatID, UpcomingShiftsText(shifts, calendar.ToISODate(c.now())))
}

func (c *BotController) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.logger.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

const notLinkedText = "Чат не привязан. Отправьте /start, чтобы получить код привязки."

// StartText инструкция по привязке чата с кодом
func StartText(code string) string {
	return fmt.Sprintf("👋 Привет!\n\nВаш код привязки:\n%s\n\n"+
		"Введите его в приложении в течение %d минут, чтобы получать подтверждения резервов.",
		code, int(auth.LinkCodeLifetime.Minutes()))
}

// UpcomingShiftsText выходы начиная с today, не больше upcomingLimit
func UpcomingShiftsText(shifts []*model.Shift, today string) string {
	var sb strings.Builder
	count := 0
	for _, s := range shifts {
		if s.Date < today {
			continue
		}
		if count == upcomingLimit {
			break
		}
		if count == 0 {
			sb.WriteString("📅 Ближайшие выходы:\n")
		}
		fmt.Fprintf(&sb, "\n%s  %s — %s (%s)",
			formatting.FormatDateHeader(s.Date), s.TimeFrom, s.TimeTo,
			formatting.CalcDuration(s.TimeFrom, s.TimeTo))
		if s.ConfirmedByAdmin {
			sb.WriteString(" ✅")
		}
		count++
	}
	if count == 0 {
		return "Нет запланированных выходов"
	}
	return sb.String()
}
