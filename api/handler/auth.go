package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/simpletask/backend/api/transport"
	"github.com/simpletask/backend/internal/middleware"
	"github.com/simpletask/backend/pkg/httpcontext"
	authUC "github.com/simpletask/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Log in with the fixed account
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Email == "" || req.Password == "" {
		h.respondMessage(ctx, http.StatusBadRequest, transport.MsgCredentialsNeeded)
		return
	}

	user, err := h.uc.VerifyCredentials(req.Email, req.Password)
	if err != nil {
		h.respondMessage(ctx, http.StatusUnauthorized, transport.MsgCredentialMismatch)
		return
	}

	token, err := h.uc.IssueToken(*user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		h.respondMessage(ctx, http.StatusInternalServerError, transport.MsgInternalError)
		return
	}

	setSessionCookie(ctx, token)
	h.respondMessage(ctx, http.StatusOK, transport.MsgLoginSuccess)
}

// @Summary Log out
// @Tags auth
// @Router /logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	// Clearing is unconditional; no prior session is required.
	clearSessionCookie(ctx)
	h.respondMessage(ctx, http.StatusOK, transport.MsgLogoutSuccess)
}

func setSessionCookie(ctx *fasthttp.RequestCtx, token string) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(middleware.CookieName)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	ctx.Response.Header.SetCookie(cookie)
}

func clearSessionCookie(ctx *fasthttp.RequestCtx) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(middleware.CookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(cookie)
}
