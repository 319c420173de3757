package notify

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/scheduler"
)

// sender is the part of tgbotapi.BotAPI used here
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends notifications to a single chat through a bot
type Telegram struct {
	api    sender
	chatID int64
	log    *zap.Logger
	now    func() time.Time
}

// NewTelegram connects to the bot API with token
func NewTelegram(token string, chatID int64, log *zap.Logger) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	log.Info("Authorized on Telegram", zap.String("account", api.Self.UserName))
	return newTelegram(api, chatID, log), nil
}

func newTelegram(api sender, chatID int64, log *zap.Logger) *Telegram {
	return &Telegram{
		api:    api,
		chatID: chatID,
		log:    log.With(zap.String("component", "telegram")),
		now:    time.Now,
	}
}

func (t *Telegram) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("Error sending message", zap.Int64("chat_id", t.chatID), zap.Error(err))
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func (t *Telegram) SendReminder(ctx context.Context, r scheduler.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.send(ReminderText(r, t.now()))
}

func (t *Telegram) SendSummary(ctx context.Context, s scheduler.WeeklySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.send(SummaryText(s))
}
