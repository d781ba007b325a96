package repository

import (
	"context"
	"time"

	"github.com/zmfmock/server/domain"
)

// ResultSetStore holds the retained result sets keyed by cache token.
type ResultSetStore interface {
	Save(ctx context.Context, rs *domain.ResultSet) error
	Get(ctx context.Context, token string) (*domain.ResultSet, error)
	// FindBySignature returns a non-expired result set owned by the session
	// whose originating query matches the signature, if one exists.
	FindBySignature(ctx context.Context, ownerSessionID, signature string) (*domain.ResultSet, bool)
	// Touch refreshes the last-access timestamp of the named set.
	Touch(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
	DeleteAll(ctx context.Context) error
	// DeleteExpired removes every set unaccessed for longer than the store's
	// TTL and returns how many were removed.
	DeleteExpired(ctx context.Context, reference time.Time) (int, error)
	List(ctx context.Context) ([]*domain.ResultSet, error)
	Count(ctx context.Context) (int, error)
}
