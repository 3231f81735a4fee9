package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

func (b *Bot) handleUpdate(ctx context.Context, handler ConversationHandler,
	update tgbotapi.Update) {

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic while handling update", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, b.handlerTimeout)
	defer cancel()

	event, ok := eventFromUpdate(update)
	if !ok {
		return
	}

	if update.CallbackQuery != nil {
		if err := b.AnswerCallbackQuery(update.CallbackQuery.ID, ""); err != nil {
			b.log.Error("failed to answer callback query", "error", err)
		}
	}

	handler.HandleEvent(ctx, event)
}

// eventFromUpdate maps a raw update onto a domain event. Updates carrying
// nothing the conversation can act on (edits, channel posts, stickers) are
// dropped.
func eventFromUpdate(update tgbotapi.Update) (domain.Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		msg := update.CallbackQuery.Message
		if msg == nil {
			return domain.Event{}, false
		}
		return domain.Event{
			UserID:       msg.Chat.ID,
			Kind:         domain.EventSelection,
			Text:         update.CallbackQuery.Data,
			ReporterName: update.CallbackQuery.From.FirstName,
		}, true

	case update.Message == nil:
		return domain.Event{}, false

	case update.Message.IsCommand():
		return domain.Event{
			UserID:       update.Message.Chat.ID,
			Kind:         domain.EventCommand,
			Command:      update.Message.Command(),
			Text:         update.Message.CommandArguments(),
			ReporterName: senderName(update.Message),
		}, true

	case len(update.Message.Photo) > 0:
		// Telegram sends several sizes of the same photo; the last entry is
		// the highest resolution.
		photos := update.Message.Photo
		return domain.Event{
			UserID:       update.Message.Chat.ID,
			Kind:         domain.EventPhoto,
			PhotoRef:     photos[len(photos)-1].FileID,
			ReporterName: senderName(update.Message),
		}, true

	case update.Message.Text != "":
		return domain.Event{
			UserID:       update.Message.Chat.ID,
			Kind:         domain.EventText,
			Text:         update.Message.Text,
			ReporterName: senderName(update.Message),
		}, true

	default:
		return domain.Event{}, false
	}
}

func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.FirstName
}
