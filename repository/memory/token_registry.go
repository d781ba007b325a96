package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/zmfmock/server/repository"
)

type tokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> sessionID
}

// NewTokenRegistry creates an in-memory bearer token registry.
func NewTokenRegistry() repository.TokenRegistry {
	return &tokenRegistry{
		tokens: make(map[string]string),
	}
}

func (r *tokenRegistry) Issue(ctx context.Context, sessionID string) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = sessionID
	return token, nil
}

func (r *tokenRegistry) Lookup(ctx context.Context, token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionID, ok := r.tokens[token]
	return sessionID, ok
}

func (r *tokenRegistry) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}

func (r *tokenRegistry) RevokeAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = make(map[string]string)
	return nil
}

func (r *tokenRegistry) List(ctx context.Context) ([]repository.TokenBinding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.TokenBinding, 0, len(r.tokens))
	for token, sessionID := range r.tokens {
		out = append(out, repository.TokenBinding{Token: token, SessionID: sessionID})
	}
	return out, nil
}

func (r *tokenRegistry) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens), nil
}
