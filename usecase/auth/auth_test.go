package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/repository"
	"github.com/zmfmock/server/repository/memory"
)

type fixtures struct {
	sessions repository.SessionStore
	tokens   repository.TokenRegistry
}

func newTestGate(t *testing.T) (*Gate, *fixtures) {
	f := &fixtures{
		sessions: memory.NewSessionStore(),
		tokens:   memory.NewTokenRegistry(),
	}
	validator := NewValidator(map[string]string{
		"testuser": "testpass",
		"ADMIN":    "ADMIN",
	})
	return New(validator, f.sessions, f.tokens, zaptest.NewLogger(t)), f
}

func TestGate_CredentialLogin(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	result, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	assert.Equal(t, "testuser", result.Session.Username)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.TokenIssued)
	assert.Equal(t, result.Token, result.Session.CurrentToken)
}

func TestGate_SessionIDIsDeterministic(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	first, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	second, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)

	assert.Equal(t, first.Session.ID, second.Session.ID)
	assert.Equal(t, domain.SessionIDFor("testuser"), first.Session.ID)

	other, err := gate.Authenticate(ctx, &Credentials{Username: "ADMIN", Password: "ADMIN"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.Session.ID, other.Session.ID)
}

func TestGate_TokenReusedAcrossLogins(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	first, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	second, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)

	assert.Equal(t, first.Token, second.Token)
	assert.False(t, second.TokenIssued)
}

func TestGate_BearerAuthentication(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	login, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)

	result, err := gate.Authenticate(ctx, nil, login.Token)
	require.NoError(t, err)
	assert.Equal(t, login.Session.ID, result.Session.ID)
	assert.False(t, result.TokenIssued)
}

func TestGate_RevokedTokenRejected(t *testing.T) {
	gate, f := newTestGate(t)
	ctx := context.Background()

	login, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(ctx, login.Token))

	_, err = gate.Authenticate(ctx, nil, login.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// Still rejected even though the session record survives; a fresh
	// credential login mints a replacement token.
	relogin, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	assert.True(t, relogin.TokenIssued)
	assert.NotEqual(t, login.Token, relogin.Token)
}

func TestGate_TokenRejectedAfterSessionClear(t *testing.T) {
	gate, f := newTestGate(t)
	ctx := context.Background()

	login, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "testpass"}, "")
	require.NoError(t, err)
	require.NoError(t, f.sessions.Clear(ctx))

	_, err = gate.Authenticate(ctx, nil, login.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// The dangling binding is dropped on first use.
	_, ok := f.tokens.Lookup(ctx, login.Token)
	assert.False(t, ok)
}

func TestGate_InvalidCredentials(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	_, err := gate.Authenticate(ctx, &Credentials{Username: "testuser", Password: "wrong"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = gate.Authenticate(ctx, &Credentials{Username: "ghost", Password: "testpass"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGate_NoCredentialsNoToken(t *testing.T) {
	gate, _ := newTestGate(t)

	_, err := gate.Authenticate(context.Background(), nil, "")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestGate_UnknownBearerToken(t *testing.T) {
	gate, _ := newTestGate(t)

	_, err := gate.Authenticate(context.Background(), nil, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestValidator(t *testing.T) {
	v := NewValidator(map[string]string{"testuser": "testpass"})

	assert.True(t, v.Validate("testuser", "testpass"))
	assert.False(t, v.Validate("testuser", "TESTPASS"))
	assert.False(t, v.Validate("", ""))
	assert.False(t, v.Validate("other", "testpass"))
}
