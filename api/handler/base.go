package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/zmfmock/server/api/transport"
	"github.com/zmfmock/server/domain"
	"github.com/zmfmock/server/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondXML(ctx *fasthttp.RequestCtx, status int, resp *transport.Response) {
	transport.WriteXML(ctx, status, resp)
}

// respondFault maps a domain error onto the protocol's semantic status alias
// and the closest HTTP status.
func (h baseHandler) respondFault(ctx *fasthttp.RequestCtx, err error) {
	httpStatus, status := mapError(err)
	transport.WriteXML(ctx, httpStatus, transport.NewFault(status, err.Error()))
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func mapError(err error) (int, transport.Status) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, transport.StatusNotAvailable
	case domain.IsDomainError(err, domain.ErrCodeDenied):
		return http.StatusForbidden, transport.StatusNotAvailable
	case domain.IsDomainError(err, domain.ErrCodeInvalidParm):
		return http.StatusBadRequest, transport.StatusInvalidParm
	case domain.IsDomainError(err, domain.ErrCodeNotAvailable):
		return http.StatusNotFound, transport.StatusNotAvailable
	default:
		return http.StatusInternalServerError, transport.StatusInvalidData
	}
}
