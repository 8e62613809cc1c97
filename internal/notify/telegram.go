package notify

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"springer_downloader/internal/models"
)

// Telegram sends plain-text notifications to a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram connects to the Bot API. endpoint is a format string taking the token and
// the method name, e.g. a local bot server; empty means api.telegram.org.
func NewTelegram(token string, endpoint string, client *http.Client, chatID int64, logger *zap.Logger) (*Telegram, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = false

	logger.Info("Telegram notifications enabled",
		zap.String("bot", bot.Self.UserName),
		zap.Int64("chatID", chatID),
	)

	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

func (t *Telegram) BookSaved(ctx context.Context, book models.BookPage, target models.DownloadTarget) error {
	text := fmt.Sprintf("📚 %s\nAuthor: %s\nSaved: %s", book.Title, book.Author, target.Filename)
	return t.send(ctx, text)
}

func (t *Telegram) RunFinished(ctx context.Context, stats models.Stats) error {
	text := fmt.Sprintf("✅ Done: %d pages, %d books, %d files downloaded, %d already present",
		stats.Pages, stats.Books, stats.Downloaded, stats.Skipped)
	return t.send(ctx, text)
}

func (t *Telegram) send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
