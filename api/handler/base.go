package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/simpletask/backend/api/transport"
	"github.com/simpletask/backend/domain"
	"github.com/simpletask/backend/pkg/httpcontext"
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

// respondJSON writes payload as the whole body. Resource responses are the
// plain object or array, without an envelope.
func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("response marshal failed", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetBody(nil)
		return
	}
	ctx.SetBody(body)
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, msg string) {
	h.respondJSON(ctx, status, transport.NewMessage(msg))
}

// respondError maps a domain error to its fixed HTTP response. Anything
// outside the taxonomy becomes the uniform 500.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.respondMessage(ctx, http.StatusNotFound, transport.MsgTaskNotFound)
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		h.respondMessage(ctx, http.StatusUnauthorized, transport.MsgInvalidToken)
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		h.respondMessage(ctx, http.StatusBadRequest, transport.MsgInvalidPayload)
	default:
		h.logger.Error("unhandled repository error", zap.Error(err))
		h.respondMessage(ctx, http.StatusInternalServerError, transport.MsgInternalError)
	}
}
