package telegram

import (
	"context"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

type ConversationHandler interface {
	HandleEvent(ctx context.Context, event domain.Event)
}
