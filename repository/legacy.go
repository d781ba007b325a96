package repository

import "context"

// LegacyCache is the backward-compatible response cache: token to serialized
// response body. No ownership, no expiry; only an explicit clear empties it.
type LegacyCache interface {
	Put(ctx context.Context, body []byte) (string, error)
	Get(ctx context.Context, token string) ([]byte, bool)
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
