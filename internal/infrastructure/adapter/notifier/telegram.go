package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/amirhossein-jamali/smm-panel/internal/domain/port/notification"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var _ notification.Notifier = (*Telegram)(nil)

// ErrMissingCredentials is returned when the bot token or chat id is empty
var ErrMissingCredentials = errors.New("telegram bot token and chat id are required")

// TelegramOptions tunes the bot client. Zero values use the public API.
type TelegramOptions struct {
	// Endpoint is a format string with two %s verbs: token, then method
	Endpoint   string
	HTTPClient *http.Client
}

// Telegram sends formatted events to a single chat through the Bot API
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authenticates the bot (getMe) and returns a notifier bound to chatID
func NewTelegram(token string, chatID int64, opts TelegramOptions) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, ErrMissingCredentials
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: authenticate bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: chatID}, nil
}

// BotName returns the username reported by getMe
func (t *Telegram) BotName() string {
	return t.bot.Self.UserName
}

// Notify sends the event text. The Bot API client is not context aware, so the
// send runs in its own goroutine and ctx only bounds how long we wait for it.
func (t *Telegram) Notify(ctx context.Context, event notification.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(event))
	msg.DisableWebPagePreview = true

	result := make(chan error, 1)
	go func() {
		_, err := t.bot.Send(msg)
		result <- err
	}()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("telegram: send %s: %w", event.Action, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
