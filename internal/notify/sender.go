package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/phasecast/internal/logger"
	"gopkg.in/telebot.v3"
)

var ErrChatIDMissing = errors.New("telegram chat id missing")

type Sender interface {
	Send(ctx context.Context, chatID int64, message string) error
}

// TelegramSender delivers reminders through the Telegram Bot API. It never
// polls for updates.
type TelegramSender struct {
	bot *telebot.Bot
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	return newTelegramSender(telebot.Settings{Token: token})
}

func newTelegramSender(settings telebot.Settings) (*TelegramSender, error) {
	if strings.TrimSpace(settings.Token) == "" {
		return nil, errors.New("telegram bot token is required")
	}
	settings.Offline = true
	if settings.Client == nil {
		settings.Client = &http.Client{Timeout: 10 * time.Second}
	}

	bot, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

func (sender *TelegramSender) Send(ctx context.Context, chatID int64, message string) error {
	if chatID == 0 {
		return ErrChatIDMissing
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := sender.bot.Send(telebot.ChatID(chatID), message, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// LogSender only records reminders. Used when no bot token is configured.
type LogSender struct {
	log *logrus.Entry
}

func NewLogSender(log logrus.FieldLogger) *LogSender {
	return &LogSender{log: logger.Component(log, "notify")}
}

func (sender *LogSender) Send(_ context.Context, chatID int64, message string) error {
	sender.log.WithFields(logrus.Fields{
		"chat_id": chatID,
		"message": message,
	}).Info("reminder (telegram disabled)")
	return nil
}

// NewSender picks the Telegram sender when a token is set.
func NewSender(token string, log logrus.FieldLogger) (Sender, error) {
	if strings.TrimSpace(token) == "" {
		return NewLogSender(log), nil
	}
	return NewTelegramSender(token)
}
