package usecase

import (
	"context"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

type SessionProvider interface {
	Get(ctx context.Context, userID int64) *domain.Session
	Set(ctx context.Context, userID int64, session *domain.Session) error
	Reset(ctx context.Context, userID int64)
	CorrelationID(ctx context.Context, userID int64) string
}

type Replier interface {
	Reply(ctx context.Context, userID int64, text string) error
	ReplyWithChoices(ctx context.Context, userID int64, text string, choices []domain.Choice) error
}

type MediaResolver interface {
	ResolveLink(ctx context.Context, photoRef string) (string, error)
}

type ReportStore interface {
	Append(ctx context.Context, report domain.Report) error
}
