package sessionStore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

func TestGetCreatesIdleDefault(t *testing.T) {
	store := NewSessionStore()

	session := store.Get(context.Background(), 42)

	require.NotNil(t, session)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, domain.StateIdle, session.State)
}

func TestSetThenGetReturnsSameSession(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := &domain.Session{
		UserID: 42,
		State:  domain.StateAwaitingRoom,
		Hotel:  "Bubulak Inn",
	}
	require.NoError(t, store.Set(ctx, 42, session))

	got := store.Get(ctx, 42)
	assert.Same(t, session, got)
}

func TestResetDiscardsSession(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	session := store.Get(ctx, 42)
	session.State = domain.StateAwaitingRemarks
	session.Hotel = "Nirmala Resort"

	store.Reset(ctx, 42)

	fresh := store.Get(ctx, 42)
	assert.Equal(t, domain.StateIdle, fresh.State)
	assert.Empty(t, fresh.Hotel)
}

func TestCorrelationIDIsStableUntilReset(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	first := store.CorrelationID(ctx, 42)
	require.NotEmpty(t, first)
	assert.Equal(t, first, store.CorrelationID(ctx, 42))

	store.Reset(ctx, 42)
	assert.NotEqual(t, first, store.CorrelationID(ctx, 42))
}

func TestActiveIDsSkipsIdleSessions(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	store.Get(ctx, 1)
	store.Get(ctx, 2).State = domain.StateAwaitingHotel
	store.Get(ctx, 3).State = domain.StateAwaitingRemarks

	ids := store.ActiveIDs(ctx)
	assert.ElementsMatch(t, []int64{2, 3}, ids)
}

func TestConcurrentAccessPerKey(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			session := store.Get(ctx, userID)
			session.State = domain.StateAwaitingHotel
			_ = store.Set(ctx, userID, session)
			_ = store.CorrelationID(ctx, userID)
			store.Reset(ctx, userID)
		}(int64(i))
	}
	wg.Wait()

	assert.Empty(t, store.ActiveIDs(ctx))
}
