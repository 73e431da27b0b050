package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/simpletask/backend/api/transport"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles a handler per client address. It fails open: a limiter
// backend error lets the request through rather than locking clients out.
func RateLimit(limiter Limiter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		if limiter == nil {
			return next
		}
		return func(ctx *fasthttp.RequestCtx) {
			allowed, err := limiter.Allow(ctx, clientKey(ctx))
			if err != nil {
				logger.Warn("rate limiter check failed", zap.Error(err))
				next(ctx)
				return
			}
			if !allowed {
				respondMessage(ctx, http.StatusTooManyRequests, transport.MsgTooManyRequests)
				return
			}
			next(ctx)
		}
	}
}

func clientKey(ctx *fasthttp.RequestCtx) string {
	addr := ctx.RemoteAddr()
	if addr == nil {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}
