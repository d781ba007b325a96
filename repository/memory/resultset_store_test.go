package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmfmock/server/domain"
)

func newTestResultSet(token, owner string, lastAccess time.Time) *domain.ResultSet {
	return &domain.ResultSet{
		Token:          token,
		ResourceType:   "program",
		Records:        []domain.Record{{"name": "PGM00001"}},
		OwnerSessionID: owner,
		CreatedAt:      lastAccess,
		LastAccessedAt: lastAccess,
		Query:          map[string]string{"count": "1"},
		TotalCount:     1,
	}
}

func TestResultSetStore_SaveAndGet(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	rs := newTestResultSet("tok1", "S1", time.Now())
	require.NoError(t, store.Save(ctx, rs))

	got, err := store.Get(ctx, "tok1")
	require.NoError(t, err)
	assert.Equal(t, "tok1", got.Token)
	assert.Equal(t, "S1", got.OwnerSessionID)
	assert.Equal(t, 1, got.TotalCount)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestResultSetStore_FindBySignature(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	rs := newTestResultSet("tok1", "S1", time.Now())
	require.NoError(t, store.Save(ctx, rs))

	sig := domain.QuerySignature("program", map[string]string{"count": "1"})

	found, ok := store.FindBySignature(ctx, "S1", sig)
	require.True(t, ok)
	assert.Equal(t, "tok1", found.Token)

	// Another session never sees it.
	_, ok = store.FindBySignature(ctx, "S2", sig)
	assert.False(t, ok)

	// A different query does not match.
	otherSig := domain.QuerySignature("program", map[string]string{"count": "2"})
	_, ok = store.FindBySignature(ctx, "S1", otherSig)
	assert.False(t, ok)
}

func TestResultSetStore_FindBySignatureSkipsExpired(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	stale := newTestResultSet("tok1", "S1", time.Now().Add(-20*time.Minute))
	require.NoError(t, store.Save(ctx, stale))

	sig := domain.QuerySignature("program", map[string]string{"count": "1"})
	_, ok := store.FindBySignature(ctx, "S1", sig)
	assert.False(t, ok)
}

func TestResultSetStore_Touch(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	past := time.Now().Add(-10 * time.Minute)
	require.NoError(t, store.Save(ctx, newTestResultSet("tok1", "S1", past)))
	require.NoError(t, store.Touch(ctx, "tok1"))

	got, err := store.Get(ctx, "tok1")
	require.NoError(t, err)
	assert.True(t, got.LastAccessedAt.After(past))

	assert.ErrorIs(t, store.Touch(ctx, "missing"), domain.ErrTokenNotFound)
}

func TestResultSetStore_DeleteExpired(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestResultSet("fresh", "S1", time.Now())))
	require.NoError(t, store.Save(ctx, newTestResultSet("stale", "S1", time.Now().Add(-16*time.Minute))))
	require.NoError(t, store.Save(ctx, newTestResultSet("older", "S2", time.Now().Add(-2*time.Hour))))

	removed, err := store.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "stale")
	assert.Error(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResultSetStore_DeleteAll(t *testing.T) {
	store := NewResultSetStore(15 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newTestResultSet("tok1", "S1", time.Now())))
	require.NoError(t, store.Save(ctx, newTestResultSet("tok2", "S2", time.Now())))
	require.NoError(t, store.DeleteAll(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
