package middleware

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/simpletask/backend/api/transport"
	"github.com/simpletask/backend/domain"
	authUC "github.com/simpletask/backend/usecase/auth"
)

const testToken = "simple-auth-token"

var testIdentity = domain.User{ID: "1", Email: "test@example.com"}

func newVerifier() TokenVerifier {
	return authUC.New(
		authUC.Credentials{Email: testIdentity.Email, Password: "password"},
		testIdentity,
		authUC.NewStaticScheme(testToken, testIdentity),
		nil,
	)
}

func protectedCtx(cookie string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(http.MethodGet)
	ctx.Request.SetRequestURI("/auth/tasks")
	if cookie != "" {
		ctx.Request.Header.SetCookie(CookieName, cookie)
	}
	return ctx
}

func messageOf(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var msg transport.Message
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &msg))
	return msg.Message
}

func TestSessionAuthNoToken(t *testing.T) {
	called := false
	gate := SessionAuth(newVerifier(), nil)(func(*fasthttp.RequestCtx) { called = true })

	ctx := protectedCtx("")
	gate(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgNoToken, messageOf(t, ctx))
}

func TestSessionAuthInvalidToken(t *testing.T) {
	called := false
	gate := SessionAuth(newVerifier(), nil)(func(*fasthttp.RequestCtx) { called = true })

	ctx := protectedCtx("forged-token")
	gate(ctx)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgInvalidToken, messageOf(t, ctx))
}

func TestSessionAuthValidTokenAttachesIdentity(t *testing.T) {
	var attached domain.User
	var ok bool
	gate := SessionAuth(newVerifier(), nil)(func(ctx *fasthttp.RequestCtx) {
		attached, ok = UserFrom(ctx)
		ctx.SetStatusCode(http.StatusOK)
	})

	ctx := protectedCtx(testToken)
	gate(ctx)

	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	require.True(t, ok)
	assert.Equal(t, "1", attached.ID)
	assert.Equal(t, "test@example.com", attached.Email)
}
