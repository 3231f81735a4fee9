package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

func TestEventFromUpdateCallback(t *testing.T) {
	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: "Bubulak Inn",
			From: &tgbotapi.User{FirstName: "Sari"},
			Message: &tgbotapi.Message{
				Chat: &tgbotapi.Chat{ID: 7},
			},
		},
	}

	event, ok := eventFromUpdate(update)

	require.True(t, ok)
	assert.Equal(t, domain.EventSelection, event.Kind)
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, "Bubulak Inn", event.Text)
	assert.Equal(t, "Sari", event.ReporterName)
}

func TestEventFromUpdateCommand(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "/start",
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: 6},
			},
			Chat: &tgbotapi.Chat{ID: 7},
			From: &tgbotapi.User{FirstName: "Sari"},
		},
	}

	event, ok := eventFromUpdate(update)

	require.True(t, ok)
	assert.Equal(t, domain.EventCommand, event.Kind)
	assert.Equal(t, "start", event.Command)
}

func TestEventFromUpdatePhotoPicksHighestResolution(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			Photo: []tgbotapi.PhotoSize{
				{FileID: "thumb", Width: 90},
				{FileID: "medium", Width: 320},
				{FileID: "full", Width: 1280},
			},
			Chat: &tgbotapi.Chat{ID: 7},
			From: &tgbotapi.User{FirstName: "Sari"},
		},
	}

	event, ok := eventFromUpdate(update)

	require.True(t, ok)
	assert.Equal(t, domain.EventPhoto, event.Kind)
	assert.Equal(t, "full", event.PhotoRef)
}

func TestEventFromUpdateText(t *testing.T) {
	update := tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "204",
			Chat: &tgbotapi.Chat{ID: 7},
			From: &tgbotapi.User{FirstName: "Sari"},
		},
	}

	event, ok := eventFromUpdate(update)

	require.True(t, ok)
	assert.Equal(t, domain.EventText, event.Kind)
	assert.Equal(t, "204", event.Text)
}

func TestEventFromUpdateDropsUnusableUpdates(t *testing.T) {
	_, ok := eventFromUpdate(tgbotapi.Update{})
	assert.False(t, ok)

	// Sticker-style message: no text, no photo.
	_, ok = eventFromUpdate(tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
	})
	assert.False(t, ok)
}
