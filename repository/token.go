package repository

import "context"

// TokenBinding pairs an opaque bearer token with the session it grants
// access to.
type TokenBinding struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// TokenRegistry maps opaque bearer tokens to sessions. Each token belongs to
// exactly one session; minting a replacement token for a session must revoke
// the old one first.
type TokenRegistry interface {
	// Issue generates a fresh opaque token bound to the session.
	Issue(ctx context.Context, sessionID string) (string, error)
	// Lookup resolves a presented token to its session id.
	Lookup(ctx context.Context, token string) (string, bool)
	Revoke(ctx context.Context, token string) error
	RevokeAll(ctx context.Context) error
	List(ctx context.Context) ([]TokenBinding, error)
	Count(ctx context.Context) (int, error)
}
