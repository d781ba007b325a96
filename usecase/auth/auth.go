package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/repository"
)

// Credentials is a decoded username/password pair from the request.
type Credentials struct {
	Username string
	Password string
}

// Result is the outcome of a successful authentication.
type Result struct {
	Session *domain.Session
	// Token is the bearer token valid for the session.
	Token string
	// TokenIssued reports that the token was minted during this request and
	// should be attached to the response as a cookie.
	TokenIssued bool
}

// Gate authenticates inbound requests against the fixed credential set, the
// session store and the bearer token registry.
type Gate struct {
	validator *Validator
	sessions  repository.SessionStore
	tokens    repository.TokenRegistry
	logger    *zap.Logger
}

func New(validator *Validator, sessions repository.SessionStore, tokens repository.TokenRegistry, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		validator: validator,
		sessions:  sessions,
		tokens:    tokens,
		logger:    logger,
	}
}

// Authenticate resolves the request identity. A presented bearer token wins
// over credentials; with neither the request is rejected.
func (g *Gate) Authenticate(ctx context.Context, creds *Credentials, bearer string) (*Result, error) {
	if bearer != "" {
		return g.authenticateToken(ctx, bearer)
	}
	if creds != nil {
		return g.authenticateCredentials(ctx, creds)
	}
	return nil, domain.ErrAuthRequired
}

func (g *Gate) authenticateToken(ctx context.Context, bearer string) (*Result, error) {
	sessionID, ok := g.tokens.Lookup(ctx, bearer)
	if !ok {
		g.logger.Warn("unknown bearer token presented")
		return nil, domain.ErrInvalidToken
	}

	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		// Token survived a session clear; treat it as revoked.
		_ = g.tokens.Revoke(ctx, bearer)
		return nil, domain.ErrInvalidToken
	}

	session.Touch()
	if err := g.sessions.Save(ctx, session); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "session update failed", err)
	}

	return &Result{Session: session, Token: bearer}, nil
}

func (g *Gate) authenticateCredentials(ctx context.Context, creds *Credentials) (*Result, error) {
	if !g.validator.Validate(creds.Username, creds.Password) {
		g.logger.Warn("credential validation failed", zap.String("username", creds.Username))
		return nil, domain.ErrInvalidCredentials
	}

	sessionID := domain.SessionIDFor(creds.Username)
	session, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		session = &domain.Session{
			ID:        sessionID,
			Username:  creds.Username,
			LoginTime: time.Now(),
		}
		g.logger.Info("session created",
			zap.String("session_id", sessionID),
			zap.String("username", creds.Username))
	}
	session.Touch()

	// Reuse the session's live token when one exists; otherwise mint a new
	// one, revoking any stale reference first so no token aliases remain.
	if session.CurrentToken != "" {
		if _, ok := g.tokens.Lookup(ctx, session.CurrentToken); ok {
			if err := g.sessions.Save(ctx, session); err != nil {
				return nil, domain.WrapError(domain.ErrCodeInternal, "session update failed", err)
			}
			return &Result{Session: session, Token: session.CurrentToken}, nil
		}
		_ = g.tokens.Revoke(ctx, session.CurrentToken)
	}

	token, err := g.tokens.Issue(ctx, sessionID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "token issue failed", err)
	}
	session.CurrentToken = token
	if err := g.sessions.Save(ctx, session); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "session update failed", err)
	}

	return &Result{Session: session, Token: token, TokenIssued: true}, nil
}
