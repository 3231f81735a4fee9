package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

type Bot struct {
	*tgbotapi.BotAPI
	log            *slog.Logger
	webhookURL     string
	port           string
	handlerTimeout time.Duration
}

func NewBot(config *configs.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: config.TG.ConnectionTimeout,
	}

	return &Bot{
		BotAPI:         api,
		log:            log,
		webhookURL:     config.TG.WebhookURL,
		port:           config.TG.Port,
		handlerTimeout: config.TG.HandlerTimeout,
	}, nil
}

// Run consumes updates until the channel closes. Each update is handled on
// its own goroutine so one user's slow save cannot stall the others.
func (b *Bot) Run(ctx context.Context, handler ConversationHandler) error {
	updates, err := b.updates()
	if err != nil {
		return err
	}

	for update := range updates {
		go b.handleUpdate(ctx, handler, update)
	}
	return nil
}

func (b *Bot) updates() (tgbotapi.UpdatesChannel, error) {
	const op = "telegram.updates"

	if b.webhookURL == "" {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		return b.GetUpdatesChan(u), nil
	}

	wh, err := tgbotapi.NewWebhook(b.webhookURL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid webhook url: %w", op, err)
	}
	if _, err = b.Request(wh); err != nil {
		return nil, fmt.Errorf("%s: failed to register webhook: %w", op, err)
	}
	mux, updates := b.webhookMux()
	go func() {
		if err := http.ListenAndServe(":"+b.port, mux); err != nil {
			b.log.Error("webhook server stopped", "error", err)
		}
	}()
	return updates, nil
}

// webhookMux serves updates on a mux of its own, so the token-bearing webhook
// path never shares a listener with the metrics endpoint.
func (b *Bot) webhookMux() (*http.ServeMux, tgbotapi.UpdatesChannel) {
	updates := make(chan tgbotapi.Update, b.Buffer)
	mux := http.NewServeMux()
	mux.HandleFunc("/"+b.Token, func(w http.ResponseWriter, r *http.Request) {
		update, err := b.HandleUpdate(r)
		if err != nil {
			b.log.Error("failed to decode webhook update", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updates <- *update
	})
	return mux, updates
}

func (b *Bot) Stop(ctx context.Context) {
	b.StopReceivingUpdates()
}

func (b *Bot) Reply(ctx context.Context, userID int64, text string) error {
	msg := tgbotapi.NewMessage(userID, truncateMessage(text))
	_, err := b.Send(msg)
	if err != nil {
		b.log.Error("failed to send message", "chat_id", userID, "error", err)
	}
	return err
}

func (b *Bot) ReplyWithChoices(ctx context.Context, userID int64, text string,
	choices []domain.Choice) error {

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Data),
		))
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := b.Send(msg)
	if err != nil {
		b.log.Error("failed to send keyboard", "chat_id", userID, "error", err)
	}
	return err
}

// ResolveLink turns a photo file ID into a direct download URL. The link is
// fetched lazily, at save time, so an expired or unreachable file surfaces as
// domain.ErrResolution instead of a silent bad row.
func (b *Bot) ResolveLink(ctx context.Context, photoRef string) (string, error) {
	const op = "telegram.ResolveLink"

	link, err := b.GetFileDirectURL(photoRef)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, domain.ErrResolution, err)
	}
	return link, nil
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	_, err := b.Request(cfg)
	return err
}

const maxMessageLen = 4000

// truncateMessage cuts over-long texts on a rune boundary so the result stays
// valid UTF-8.
func truncateMessage(text string) string {
	if len(text) <= maxMessageLen {
		return text
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
