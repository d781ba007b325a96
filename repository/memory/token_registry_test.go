package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRegistry_IssueAndLookup(t *testing.T) {
	reg := NewTokenRegistry()
	ctx := context.Background()

	token, err := reg.Issue(ctx, "S1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "-")

	sessionID, ok := reg.Lookup(ctx, token)
	require.True(t, ok)
	assert.Equal(t, "S1", sessionID)

	_, ok = reg.Lookup(ctx, "unknown")
	assert.False(t, ok)
}

func TestTokenRegistry_TokensAreUnique(t *testing.T) {
	reg := NewTokenRegistry()
	ctx := context.Background()

	a, err := reg.Issue(ctx, "S1")
	require.NoError(t, err)
	b, err := reg.Issue(ctx, "S1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestTokenRegistry_Revoke(t *testing.T) {
	reg := NewTokenRegistry()
	ctx := context.Background()

	token, err := reg.Issue(ctx, "S1")
	require.NoError(t, err)
	require.NoError(t, reg.Revoke(ctx, token))

	_, ok := reg.Lookup(ctx, token)
	assert.False(t, ok)
}

func TestTokenRegistry_RevokeAll(t *testing.T) {
	reg := NewTokenRegistry()
	ctx := context.Background()

	t1, _ := reg.Issue(ctx, "S1")
	t2, _ := reg.Issue(ctx, "S2")
	require.NoError(t, reg.RevokeAll(ctx))

	_, ok := reg.Lookup(ctx, t1)
	assert.False(t, ok)
	_, ok = reg.Lookup(ctx, t2)
	assert.False(t, ok)

	count, err := reg.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
