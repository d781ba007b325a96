package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DefaultResultSetTTL is how long a retained result set survives without
// being accessed.
const DefaultResultSetTTL = 15 * time.Minute

// ResultSet is a retained, token-addressed result set. The record list is
// fixed at creation; pagination reads slices of it without mutating the
// stored order.
type ResultSet struct {
	Token          string            `json:"token"`
	ResourceType   string            `json:"resource_type"`
	Records        []Record          `json:"-"`
	OwnerSessionID string            `json:"owner_session_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Query          map[string]string `json:"query,omitempty"`
	TotalCount     int               `json:"total_count"`
}

// IsExpired reports whether the set has gone unaccessed for longer than ttl.
func (rs *ResultSet) IsExpired(reference time.Time, ttl time.Duration) bool {
	if rs == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	if ttl <= 0 {
		ttl = DefaultResultSetTTL
	}
	return reference.Sub(rs.LastAccessedAt) > ttl
}

// Touch refreshes the last-access timestamp.
func (rs *ResultSet) Touch() {
	rs.LastAccessedAt = time.Now()
}

// QuerySignature normalizes the originating parameters of a result set into a
// comparable string, used to detect a repeat of an identical request so its
// existing result set can be reused instead of creating a duplicate.
func QuerySignature(resourceType string, query map[string]string) string {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strings.ToLower(resourceType))
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, query[k])
	}
	return b.String()
}
