package sessionStore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/indonesiaruangtidur-eng/cleaning-bot-ruangtidur/internal/domain"
)

// SessionStore keeps one in-progress report session per user. Sessions are
// process-local only; a restart loses them and the user starts over.
type SessionStore struct {
	sessions map[int64]*domain.Session
	mu       sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*domain.Session),
	}
}

// Get returns the user's session, creating an idle one on first access.
func (s *SessionStore) Get(ctx context.Context, userID int64) *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		s.sessions[userID] = &domain.Session{
			UserID: userID,
			State:  domain.StateIdle,
		}
	}
	return s.sessions[userID]
}

func (s *SessionStore) Set(ctx context.Context, userID int64, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
	return nil
}

func (s *SessionStore) Reset(ctx context.Context, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// ActiveIDs lists users with a session past StateIdle.
func (s *SessionStore) ActiveIDs(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, 32)

	for id, session := range s.sessions {
		if session != nil && session.State != domain.StateIdle {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *SessionStore) CorrelationID(ctx context.Context, userID int64) string {
	session := s.Get(ctx, userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.CorrelationID == "" {
		session.CorrelationID = generateCorrelationID()
	}
	return session.CorrelationID
}

func generateCorrelationID() string {
	return uuid.New().String()
}
