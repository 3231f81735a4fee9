package logger

import (
	"log/slog"
	"os"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs"
)

// NewLogger returns a text logger at debug level for dev and a JSON logger at
// info level otherwise.
func NewLogger(cfg *configs.Config) *slog.Logger {
	if cfg.Env == "dev" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
