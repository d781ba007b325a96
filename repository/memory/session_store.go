package memory

import (
	"context"
	"sync"

	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/repository"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewSessionStore creates an in-memory session store.
func NewSessionStore() repository.SessionStore {
	return &sessionStore{
		sessions: make(map[string]*domain.Session),
	}
}

func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.NewError(domain.ErrCodeInvalidParm, "invalid session")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *sessionStore) List(ctx context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		cp := *session
		out = append(out, &cp)
	}
	return out, nil
}

func (s *sessionStore) DetachTokens(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		session.CurrentToken = ""
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*domain.Session)
	return nil
}

func (s *sessionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}
