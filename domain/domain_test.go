package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIDFor_Deterministic(t *testing.T) {
	assert.Equal(t, SessionIDFor("testuser"), SessionIDFor("testuser"))
	assert.NotEqual(t, SessionIDFor("testuser"), SessionIDFor("ADMIN"))
	assert.Regexp(t, "^S[0-9a-f]{16}$", SessionIDFor("testuser"))
}

func TestResultSet_IsExpired(t *testing.T) {
	rs := &ResultSet{LastAccessedAt: time.Now().Add(-10 * time.Minute)}
	assert.False(t, rs.IsExpired(time.Now(), 15*time.Minute))

	rs.LastAccessedAt = time.Now().Add(-16 * time.Minute)
	assert.True(t, rs.IsExpired(time.Now(), 15*time.Minute))

	// Zero ttl falls back to the default.
	rs.LastAccessedAt = time.Now().Add(-14 * time.Minute)
	assert.False(t, rs.IsExpired(time.Now(), 0))

	var nilSet *ResultSet
	assert.True(t, nilSet.IsExpired(time.Now(), time.Minute))
}

func TestQuerySignature(t *testing.T) {
	a := QuerySignature("program", map[string]string{"count": "20", "scope": "all"})
	b := QuerySignature("program", map[string]string{"scope": "all", "count": "20"})
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, QuerySignature("program", map[string]string{"count": "10", "scope": "all"}))
	assert.NotEqual(t, a, QuerySignature("component", map[string]string{"count": "20", "scope": "all"}))

	// Resource type comparison is case-insensitive.
	assert.Equal(t, QuerySignature("Program", nil), QuerySignature("program", nil))
}

func TestError_CodesAndUnwrap(t *testing.T) {
	assert.True(t, IsDomainError(ErrTokenNotFound, ErrCodeNotAvailable))
	assert.True(t, IsDomainError(ErrAccessDenied, ErrCodeDenied))
	assert.False(t, IsDomainError(ErrTokenNotFound, ErrCodeDenied))

	wrapped := WrapError(ErrCodeInternal, "update failed", ErrSessionNotFound)
	assert.True(t, IsDomainError(wrapped, ErrCodeInternal))
	assert.Contains(t, wrapped.Error(), "update failed")
}
