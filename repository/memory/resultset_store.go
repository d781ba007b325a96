package memory

import (
	"context"
	"sync"
	"time"

	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/repository"
)

type resultSetStore struct {
	mu   sync.RWMutex
	sets map[string]*domain.ResultSet
	ttl  time.Duration
}

// NewResultSetStore creates an in-memory retained result set store. Sets
// unaccessed for longer than ttl count as expired.
func NewResultSetStore(ttl time.Duration) repository.ResultSetStore {
	if ttl <= 0 {
		ttl = domain.DefaultResultSetTTL
	}
	return &resultSetStore{
		sets: make(map[string]*domain.ResultSet),
		ttl:  ttl,
	}
}

func (s *resultSetStore) Save(ctx context.Context, rs *domain.ResultSet) error {
	if rs == nil || rs.Token == "" {
		return domain.NewError(domain.ErrCodeInvalidParm, "invalid result set")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rs
	s.sets[rs.Token] = &cp
	return nil
}

// Get returns a shallow copy of the stored set. The record slice is shared:
// callers must not reorder it in place.
func (s *resultSetStore) Get(ctx context.Context, token string) (*domain.ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs, ok := s.sets[token]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	cp := *rs
	return &cp, nil
}

func (s *resultSetStore) FindBySignature(ctx context.Context, ownerSessionID, signature string) (*domain.ResultSet, bool) {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Linear scan; fine at mock-server scale.
	for _, rs := range s.sets {
		if rs.OwnerSessionID != ownerSessionID {
			continue
		}
		if rs.IsExpired(now, s.ttl) {
			continue
		}
		if domain.QuerySignature(rs.ResourceType, rs.Query) == signature {
			cp := *rs
			return &cp, true
		}
	}
	return nil, false
}

func (s *resultSetStore) Touch(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.sets[token]
	if !ok {
		return domain.ErrTokenNotFound
	}
	rs.Touch()
	return nil
}

func (s *resultSetStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets, token)
	return nil
}

func (s *resultSetStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets = make(map[string]*domain.ResultSet)
	return nil
}

func (s *resultSetStore) DeleteExpired(ctx context.Context, reference time.Time) (int, error) {
	if reference.IsZero() {
		reference = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, rs := range s.sets {
		if rs.IsExpired(reference, s.ttl) {
			delete(s.sets, token)
			removed++
		}
	}
	return removed, nil
}

func (s *resultSetStore) List(ctx context.Context) ([]*domain.ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ResultSet, 0, len(s.sets))
	for _, rs := range s.sets {
		cp := *rs
		out = append(out, &cp)
	}
	return out, nil
}

func (s *resultSetStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets), nil
}
