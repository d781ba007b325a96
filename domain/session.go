package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session represents an authenticated mainframe user session.
// Sessions never expire on their own; only a bulk administrative
// clear removes them.
type Session struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	LoginTime    time.Time `json:"login_time"`
	LastActivity time.Time `json:"last_activity"`
	CurrentToken string    `json:"current_token,omitempty"`
}

// SessionIDFor derives the session identifier for a username. The derivation
// is a deterministic hash so repeated logins by the same user land on the
// same session record. This is a mock-server simplification: real session
// identifiers must be unpredictable.
func SessionIDFor(username string) string {
	sum := sha256.Sum256([]byte(username))
	return "S" + hex.EncodeToString(sum[:8])
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}
