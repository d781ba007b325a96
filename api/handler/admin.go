package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/zmfmock/server/api/transport"
	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/pkg/httpcontext"
	"github.com/zmfmock/server/repository"
)

// resultSetView is the admin-facing projection of a retained result set.
type resultSetView struct {
	Token          string            `json:"token"`
	ResourceType   string            `json:"resource_type"`
	OwnerSessionID string            `json:"owner_session_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Expired        bool              `json:"expired"`
	Query          map[string]string `json:"query,omitempty"`
	TotalCount     int               `json:"total_count"`
}

// AdminHandler exposes the read-only introspection views over the core state
// plus the destructive clears. This is a mock server; the admin surface is
// deliberately unauthenticated.
type AdminHandler struct {
	baseHandler
	sessions   repository.SessionStore
	tokens     repository.TokenRegistry
	resultSets repository.ResultSetStore
	legacy     repository.LegacyCache
	resultTTL  time.Duration
}

func NewAdminHandler(sessions repository.SessionStore, tokens repository.TokenRegistry, resultSets repository.ResultSetStore, legacy repository.LegacyCache, resultTTL time.Duration, adapter *httpcontext.Adapter, logger *zap.Logger) *AdminHandler {
	if resultTTL <= 0 {
		resultTTL = domain.DefaultResultSetTTL
	}
	return &AdminHandler{
		baseHandler: newBaseHandler(adapter, logger),
		sessions:    sessions,
		tokens:      tokens,
		resultSets:  resultSets,
		legacy:      legacy,
		resultTTL:   resultTTL,
	}
}

// ListSessions handles GET /admin/sessions.
func (h *AdminHandler) ListSessions(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, err := h.sessions.List(stdCtx)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessions)
}

// ListTokens handles GET /admin/tokens.
func (h *AdminHandler) ListTokens(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	bindings, err := h.tokens.List(stdCtx)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bindings)
}

// ListCacheKeys handles GET /admin/cache.
func (h *AdminHandler) ListCacheKeys(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	keys, err := h.legacy.Keys(stdCtx)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, keys)
}

// ListResultSets handles GET /admin/resultsets.
func (h *AdminHandler) ListResultSets(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sets, err := h.resultSets.List(stdCtx)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}

	now := time.Now()
	views := make([]resultSetView, 0, len(sets))
	for _, rs := range sets {
		views = append(views, resultSetView{
			Token:          rs.Token,
			ResourceType:   rs.ResourceType,
			OwnerSessionID: rs.OwnerSessionID,
			CreatedAt:      rs.CreatedAt,
			LastAccessedAt: rs.LastAccessedAt,
			Expired:        rs.IsExpired(now, h.resultTTL),
			Query:          rs.Query,
			TotalCount:     rs.TotalCount,
		})
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}

// ClearCache handles DELETE /admin/cache.
func (h *AdminHandler) ClearCache(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.legacy.Clear(stdCtx); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.logger.Info("legacy cache cleared")
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// ClearResultSets handles DELETE /admin/resultsets.
func (h *AdminHandler) ClearResultSets(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.resultSets.DeleteAll(stdCtx); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.logger.Info("all result sets cleared")
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// DeleteResultSet handles DELETE /admin/resultsets/{token}.
func (h *AdminHandler) DeleteResultSet(ctx *fasthttp.RequestCtx) {
	token, _ := ctx.UserValue("token").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.resultSets.Get(stdCtx, token); err != nil {
		h.respondJSON(ctx, http.StatusNotFound, transport.NewError(string(domain.ErrCodeNotAvailable), "result set not found", nil))
		return
	}
	if err := h.resultSets.Delete(stdCtx, token); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	h.logger.Info("result set deleted", zap.String("token", token))
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// ClearSessions handles DELETE /admin/sessions. Clearing sessions cascades:
// every bearer token is revoked and every retained result set dropped, since
// nothing could legitimately access them afterwards.
func (h *AdminHandler) ClearSessions(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.sessions.Clear(stdCtx); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	_ = h.tokens.RevokeAll(stdCtx)
	_ = h.resultSets.DeleteAll(stdCtx)

	h.logger.Info("all sessions cleared with cascade")
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// ClearTokens handles DELETE /admin/tokens. Sessions survive but lose their
// current-token reference.
func (h *AdminHandler) ClearTokens(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tokens.RevokeAll(stdCtx); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError(string(domain.ErrCodeInternal), err.Error(), nil))
		return
	}
	_ = h.sessions.DetachTokens(stdCtx)

	h.logger.Info("all bearer tokens revoked")
	h.respondSuccess(ctx, http.StatusOK, nil)
}
