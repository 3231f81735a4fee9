package googleSheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/configs"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/pkg/prometheus"
)

const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// Store appends finished reports as rows of the configured spreadsheet.
type Store struct {
	srv           *sheets.Service
	spreadsheetID string
	writeRange    string
	log           *slog.Logger
}

func NewStore(ctx context.Context, config *configs.Config, log *slog.Logger) (*Store, error) {
	const op = "googleSheets.NewStore"

	srv, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(config.Sheets.Credentials)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets client: %w", op, err)
	}

	return &Store{
		srv:           srv,
		spreadsheetID: config.Sheets.SpreadsheetID,
		writeRange:    config.Sheets.Range,
		log:           log,
	}, nil
}

// Append writes one report row. It retries transient failures a few times
// before giving up; the caller keeps the session on failure so the user can
// re-trigger the save.
func (s *Store) Append(ctx context.Context, report domain.Report) error {
	const op = "googleSheets.Append"

	values := &sheets.ValueRange{
		Values: [][]interface{}{report.Row()},
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.writeRange, values).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err == nil {
			return nil
		}
		lastErr = err
		prometheus.StoreFailures.Inc()
		s.log.WarnContext(ctx, "sheet append failed",
			"attempt", attempt,
			"spreadsheetID", s.spreadsheetID,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w: %v", op, domain.ErrStore, ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	return fmt.Errorf("%s: %w after %d attempts: %v", op, domain.ErrStore, maxAttempts, lastErr)
}
