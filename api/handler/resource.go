package handler

import (
	"encoding/xml"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/zmfmock/server/api/transport"
	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/internal/middleware"
	"github.com/zmfmock/server/pkg/httpcontext"
	"github.com/zmfmock/server/repository"
	"github.com/zmfmock/server/usecase/mockdata"
	"github.com/zmfmock/server/usecase/resultcache"
)

// ResourceHandler serves the mainframe resource endpoints: mock record
// listings and retained result-set access.
type ResourceHandler struct {
	baseHandler
	cache     *resultcache.UseCase
	generator *mockdata.Generator
	legacy    repository.LegacyCache
}

func NewResourceHandler(cache *resultcache.UseCase, generator *mockdata.Generator, legacy repository.LegacyCache, adapter *httpcontext.Adapter, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		baseHandler: newBaseHandler(adapter, logger),
		cache:       cache,
		generator:   generator,
		legacy:      legacy,
	}
}

// List handles GET /zmfrest/{resource}: generates mock records, optionally
// retaining them as a paged result set or stashing the serialized response
// in the legacy cache.
func (h *ResourceHandler) List(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFrom(ctx)
	if session == nil {
		h.respondFault(ctx, domain.ErrAuthRequired)
		return
	}

	resource, _ := ctx.UserValue("resource").(string)
	q := transport.ParseResourceQuery(ctx.QueryArgs())

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	// Backward-compatible flow: cache=true with a token replays the stored
	// serialized response verbatim.
	if q.LegacyCache && q.CacheToken != "" {
		body, ok := h.legacy.Get(stdCtx, q.CacheToken)
		if !ok {
			h.respondFault(ctx, domain.ErrTokenNotFound)
			return
		}
		ctx.Response.Header.SetContentType("application/xml")
		ctx.SetStatusCode(http.StatusOK)
		ctx.SetBody(body)
		return
	}

	// A cachetoken routes the request through the retained-set path; the
	// resource segment is ignored there, the token identifies the data.
	if q.CacheToken != "" {
		h.servePage(ctx, session.ID, q.CacheToken, resultcache.PageRequest{
			Index:   q.Index,
			Count:   q.Count,
			OrderBy: q.OrderBy,
			Retain:  q.Retain,
		}, q.SummaryOnly)
		return
	}

	if !mockdata.Known(resource) {
		h.respondFault(ctx, domain.ErrUnknownResource)
		return
	}

	if q.SimulateNoData {
		h.respondXML(ctx, http.StatusOK, transport.NewResult(nil, 0, "", q.SummaryOnly))
		return
	}

	total := q.CountOrDefault()
	records, err := h.generator.Generate(resource, total)
	if err != nil {
		h.respondFault(ctx, err)
		return
	}

	token := ""
	if q.Retain {
		rs, reused, err := h.cache.Create(stdCtx, session.ID, resource, records, map[string]string{
			"count": strconv.Itoa(total),
		})
		if err != nil {
			h.respondFault(ctx, err)
			return
		}
		token = rs.Token
		if reused {
			records = rs.Records
			total = rs.TotalCount
		}
	}

	display := resultcache.Page(records, 1, nil, q.OrderBy)
	resp := transport.NewResult(display, total, token, q.SummaryOnly)

	if q.LegacyCache && !q.Retain {
		h.stashLegacy(ctx, resp)
	}

	h.logger.Info("resource request served",
		zap.String("resource", resource),
		zap.String("session_id", session.ID),
		zap.Int("records", total),
		zap.Bool("retained", q.Retain))
	h.respondXML(ctx, http.StatusOK, resp)
}

// ResultCache handles GET /zmfrest/ResultCache/{token}[/{index}[/{count}]].
func (h *ResourceHandler) ResultCache(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFrom(ctx)
	if session == nil {
		h.respondFault(ctx, domain.ErrAuthRequired)
		return
	}

	token, _ := ctx.UserValue("token").(string)
	q := transport.ParseResourceQuery(ctx.QueryArgs())

	req := resultcache.PageRequest{
		Index:   q.Index,
		Count:   q.Count,
		OrderBy: q.OrderBy,
		Retain:  q.Retain,
	}
	if raw, ok := ctx.UserValue("index").(string); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			req.Index = v
		}
	}
	if raw, ok := ctx.UserValue("count").(string); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			req.Count = &v
		}
	}

	h.servePage(ctx, session.ID, token, req, q.SummaryOnly)
}

func (h *ResourceHandler) servePage(ctx *fasthttp.RequestCtx, sessionID, token string, req resultcache.PageRequest, summaryOnly bool) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	page, err := h.cache.Fetch(stdCtx, sessionID, token, req)
	if err != nil {
		h.respondFault(ctx, err)
		return
	}

	// The token is reported back only while the set still exists.
	respToken := ""
	if page.Retained {
		respToken = page.Token
	}
	h.respondXML(ctx, http.StatusOK, transport.NewResult(page.Records, page.Total, respToken, summaryOnly))
}

// stashLegacy serializes the response as-is into the legacy cache and reports
// the entry's token in the summary. The cached body never carries the token.
func (h *ResourceHandler) stashLegacy(ctx *fasthttp.RequestCtx, resp *transport.Response) {
	body, err := xml.Marshal(resp)
	if err != nil {
		h.logger.Warn("legacy cache serialization failed", zap.Error(err))
		return
	}
	token, err := h.legacy.Put(ctx, body)
	if err != nil {
		h.logger.Warn("legacy cache store failed", zap.Error(err))
		return
	}
	resp.Summary.CacheToken = token
}
