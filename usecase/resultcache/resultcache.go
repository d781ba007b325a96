package resultcache

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/repository"
)

// PageRequest describes one paginated read of a retained result set.
type PageRequest struct {
	// Index is 1-based; zero or negative defaults to 1.
	Index int
	// Count limits the page size; nil returns everything from Index on.
	Count *int
	// OrderBy lists attribute names used as an ascending tie-break chain.
	OrderBy []string
	// Retain keeps the set alive after this read. Without it the set is
	// discarded once the page has been produced.
	Retain bool
}

// PageResult is one page of records plus the counts the wire summary needs.
type PageResult struct {
	Token     string
	Records   []domain.Record
	Displayed int
	Total     int
	// Retained reports whether the set still exists after this read.
	Retained bool
}

// UseCase implements the retained result set operations: creation with
// duplicate detection, owner-checked paginated reads, and discard-on-read.
type UseCase struct {
	store  repository.ResultSetStore
	ttl    time.Duration
	logger *zap.Logger
}

func New(store repository.ResultSetStore, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = domain.DefaultResultSetTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// Create retains a freshly generated record list for the session and returns
// the stored set. When the session already holds a non-expired set for an
// equivalent query the existing set is reused instead of creating a
// duplicate; the second return value reports that case.
func (uc *UseCase) Create(ctx context.Context, ownerSessionID, resourceType string, records []domain.Record, query map[string]string) (*domain.ResultSet, bool, error) {
	signature := domain.QuerySignature(resourceType, query)
	if existing, ok := uc.store.FindBySignature(ctx, ownerSessionID, signature); ok {
		if err := uc.store.Touch(ctx, existing.Token); err == nil {
			uc.logger.Debug("result set reused",
				zap.String("token", existing.Token),
				zap.String("resource", resourceType))
			return existing, true, nil
		}
	}

	now := time.Now()
	rs := &domain.ResultSet{
		Token:          strings.ReplaceAll(uuid.NewString(), "-", ""),
		ResourceType:   resourceType,
		Records:        records,
		OwnerSessionID: ownerSessionID,
		CreatedAt:      now,
		LastAccessedAt: now,
		Query:          query,
		TotalCount:     len(records),
	}
	if err := uc.store.Save(ctx, rs); err != nil {
		return nil, false, err
	}

	uc.logger.Info("result set retained",
		zap.String("token", rs.Token),
		zap.String("resource", resourceType),
		zap.Int("records", rs.TotalCount))
	return rs, false, nil
}

// Fetch pages through a retained set on behalf of the session. An expired set
// is evicted and reported as not found; a set owned by another session is
// denied without touching it.
func (uc *UseCase) Fetch(ctx context.Context, sessionID, token string, req PageRequest) (*PageResult, error) {
	rs, err := uc.store.Get(ctx, token)
	if err != nil {
		return nil, domain.ErrTokenNotFound
	}

	if rs.IsExpired(time.Now(), uc.ttl) {
		_ = uc.store.Delete(ctx, token)
		uc.logger.Info("expired result set evicted on access", zap.String("token", token))
		return nil, domain.ErrTokenNotFound
	}

	if rs.OwnerSessionID != sessionID {
		uc.logger.Warn("result set access denied",
			zap.String("token", token),
			zap.String("session_id", sessionID))
		return nil, domain.ErrAccessDenied
	}

	page := Page(rs.Records, req.Index, req.Count, req.OrderBy)

	if req.Retain {
		if err := uc.store.Touch(ctx, token); err != nil {
			return nil, domain.ErrTokenNotFound
		}
	} else {
		_ = uc.store.Delete(ctx, token)
		uc.logger.Info("result set discarded", zap.String("token", token))
	}

	return &PageResult{
		Token:     token,
		Records:   page,
		Displayed: len(page),
		Total:     rs.TotalCount,
		Retained:  req.Retain,
	}, nil
}
