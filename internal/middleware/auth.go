package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/simpletask/backend/api/transport"
	"github.com/simpletask/backend/domain"
)

// CookieName is the session cookie the verifier reads.
const CookieName = "token"

const userValueKey = "auth_user"

// TokenVerifier resolves a cookie value to the identity it was issued for.
type TokenVerifier interface {
	ValidateToken(token string) (*domain.User, error)
}

// SessionAuth gates a handler behind the session cookie. A missing cookie and
// an unacceptable one produce distinct 401 messages; on success the resolved
// identity is attached to the request context for the downstream handler.
func SessionAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := string(ctx.Request.Header.Cookie(CookieName))
			if token == "" {
				respondMessage(ctx, http.StatusUnauthorized, transport.MsgNoToken)
				return
			}

			user, err := verifier.ValidateToken(token)
			if err != nil {
				logger.Warn("session token rejected", zap.Error(err))
				respondMessage(ctx, http.StatusUnauthorized, transport.MsgInvalidToken)
				return
			}

			ctx.SetUserValue(userValueKey, *user)
			next(ctx)
		}
	}
}

// UserFrom returns the identity attached by SessionAuth, if any.
func UserFrom(ctx *fasthttp.RequestCtx) (domain.User, bool) {
	user, ok := ctx.UserValue(userValueKey).(domain.User)
	return user, ok
}

func respondMessage(ctx *fasthttp.RequestCtx, status int, msg string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.NewMessage(msg))
	ctx.SetBody(body)
}
