package repository

import (
	"context"

	"github.com/zmfmock/server/domain"
)

// SessionStore holds the live sessions. Sessions have process lifetime:
// nothing evicts them except an explicit bulk clear.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	List(ctx context.Context) ([]*domain.Session, error)
	// DetachTokens removes the current-token reference from every session
	// without deleting the sessions themselves.
	DetachTokens(ctx context.Context) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
