package telegram

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot() *Bot {
	return &Bot{
		BotAPI: &tgbotapi.BotAPI{Token: "123:abc", Buffer: 1},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestWebhookMuxDeliversUpdatesOnTokenPath(t *testing.T) {
	bot := newTestBot()
	mux, updates := bot.webhookMux()

	body := `{"update_id":10,"message":{"message_id":1,"chat":{"id":7},"text":"204"}}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/123:abc", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case update := <-updates:
		assert.Equal(t, 10, update.UpdateID)
		assert.Equal(t, "204", update.Message.Text)
	default:
		t.Fatal("no update delivered")
	}
}

func TestWebhookMuxServesNothingElse(t *testing.T) {
	bot := newTestBot()
	mux, _ := bot.webhookMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookMuxRejectsMalformedUpdates(t *testing.T) {
	bot := newTestBot()
	mux, _ := bot.webhookMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/123:abc",
		strings.NewReader("not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTruncateMessageKeepsRuneBoundary(t *testing.T) {
	assert.Equal(t, "laporan", truncateMessage("laporan"))

	// The cut position lands inside a two-byte rune.
	long := strings.Repeat("a", 3999) + "éé"
	got := truncateMessage(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 3999)+"...", got)
}
