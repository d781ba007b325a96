package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/zmfmock/server/repository"
)

type legacyCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewLegacyCache creates the in-memory backward-compatible response cache.
func NewLegacyCache() repository.LegacyCache {
	return &legacyCache{
		entries: make(map[string][]byte),
	}
}

func (c *legacyCache) Put(ctx context.Context, body []byte) (string, error) {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	cp := make([]byte, len(body))
	copy(cp, body)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = cp
	return token, nil
}

func (c *legacyCache) Get(ctx context.Context, token string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	body, ok := c.entries[token]
	return body, ok
}

func (c *legacyCache) Keys(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.entries))
	for token := range c.entries {
		out = append(out, token)
	}
	return out, nil
}

func (c *legacyCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]byte)
	return nil
}

func (c *legacyCache) Count(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
