package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/zmfmock/server/pkg/httpcontext"
	"github.com/zmfmock/server/repository"
)

// HealthHandler reports liveness plus the live object counts of every store.
type HealthHandler struct {
	baseHandler
	sessions   repository.SessionStore
	tokens     repository.TokenRegistry
	resultSets repository.ResultSetStore
	legacy     repository.LegacyCache
}

func NewHealthHandler(sessions repository.SessionStore, tokens repository.TokenRegistry, resultSets repository.ResultSetStore, legacy repository.LegacyCache, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		sessions:    sessions,
		tokens:      tokens,
		resultSets:  resultSets,
		legacy:      legacy,
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, _ := h.sessions.Count(stdCtx)
	tokens, _ := h.tokens.Count(stdCtx)
	resultSets, _ := h.resultSets.Count(stdCtx)
	cacheEntries, _ := h.legacy.Count(stdCtx)

	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"counts": map[string]int{
			"sessions":      sessions,
			"tokens":        tokens,
			"result_sets":   resultSets,
			"cache_entries": cacheEntries,
		},
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
