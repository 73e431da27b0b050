package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/simpletask/backend/api/handler"
	"github.com/simpletask/backend/api/transport"
	"github.com/simpletask/backend/domain"
	"github.com/simpletask/backend/internal/infrastructure/monitor"
	"github.com/simpletask/backend/internal/middleware"
	boltRepo "github.com/simpletask/backend/repository/bolt"
	authUC "github.com/simpletask/backend/usecase/auth"
	taskUC "github.com/simpletask/backend/usecase/task"
)

// newTestAPI wires the real route table over a Bolt store and the static
// token scheme, the same shape main assembles.
func newTestAPI(t *testing.T) fasthttp.RequestHandler {
	t.Helper()

	store, err := boltRepo.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	identity := domain.User{ID: "1", Email: "test@example.com"}
	auth := authUC.New(
		authUC.Credentials{Email: "test@example.com", Password: "password"},
		identity,
		authUC.NewStaticScheme("simple-auth-token", identity),
		nil,
	)

	mon := monitor.New(0, nil)

	handlers := Handlers{
		Task:   apiHandler.NewTaskHandler(taskUC.New(store, nil), nil, nil),
		Auth:   apiHandler.NewAuthHandler(auth, nil, nil),
		Health: apiHandler.NewHealthHandler(mon, nil, nil),
	}

	r := New(handlers, middleware.SessionAuth(auth, nil), nil)
	return r.Handler
}

func doRequest(handler fasthttp.RequestHandler, method, uri, body, cookie string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	if cookie != "" {
		ctx.Request.Header.SetCookie(middleware.CookieName, cookie)
	}
	handler(ctx)
	return ctx
}

func decodeTask(t *testing.T, ctx *fasthttp.RequestCtx) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &task))
	return task
}

func decodeTasks(t *testing.T, ctx *fasthttp.RequestCtx) []domain.Task {
	t.Helper()
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	return tasks
}

func messageOf(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	var msg transport.Message
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &msg))
	return msg.Message
}

func TestTaskLifecycle(t *testing.T) {
	api := newTestAPI(t)

	ctx := doRequest(api, http.MethodGet, "/tasks", "", "")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, "[]", string(ctx.Response.Body()))

	ctx = doRequest(api, http.MethodPost, "/tasks", `{"title":"wash the dishes"}`, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	created := decodeTask(t, ctx)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.Description)
	assert.False(t, created.IsComplete)

	ctx = doRequest(api, http.MethodGet, "/tasks/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "wash the dishes", decodeTask(t, ctx).Title)

	ctx = doRequest(api, http.MethodPatch, "/tasks/"+created.ID, `{"isComplete":true}`, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	updated := decodeTask(t, ctx)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "wash the dishes", updated.Title)

	ctx = doRequest(api, http.MethodDelete, "/tasks/"+created.ID, "", "")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())

	ctx = doRequest(api, http.MethodGet, "/tasks/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgTaskNotFound, messageOf(t, ctx))
}

func TestListOrderingAndCount(t *testing.T) {
	api := newTestAPI(t)

	for i := 1; i <= 3; i++ {
		ctx := doRequest(api, http.MethodPost, "/tasks", fmt.Sprintf(`{"title":"task %d"}`, i), "")
		require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	}

	ctx := doRequest(api, http.MethodGet, "/tasks", "", "")
	tasks := decodeTasks(t, ctx)
	require.Len(t, tasks, 3)
	assert.Equal(t, "task 3", tasks[0].Title)
	assert.Equal(t, "task 1", tasks[2].Title)

	ctx = doRequest(api, http.MethodGet, "/tasks?sort=oldest", "", "")
	tasks = decodeTasks(t, ctx)
	require.Len(t, tasks, 3)
	assert.Equal(t, "task 1", tasks[0].Title)

	ctx = doRequest(api, http.MethodGet, "/tasks?count=2", "", "")
	tasks = decodeTasks(t, ctx)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task 3", tasks[0].Title)
	assert.Equal(t, "task 2", tasks[1].Title)
}

func TestProtectedListing(t *testing.T) {
	api := newTestAPI(t)

	ctx := doRequest(api, http.MethodPost, "/tasks", `{"title":"shared task"}`, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	ctx = doRequest(api, http.MethodGet, "/auth/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgNoToken, messageOf(t, ctx))

	ctx = doRequest(api, http.MethodGet, "/auth/tasks", "", "wrong-token")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgInvalidToken, messageOf(t, ctx))

	// Log in, lift the cookie from the response, replay it on the gate.
	ctx = doRequest(api, http.MethodPost, "/login", `{"email":"test@example.com","password":"password"}`, "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())

	cookie := &fasthttp.Cookie{}
	cookie.SetKey(middleware.CookieName)
	require.True(t, ctx.Response.Header.Cookie(cookie))
	token := string(cookie.Value())
	assert.Equal(t, "simple-auth-token", token)

	ctx = doRequest(api, http.MethodGet, "/auth/tasks", "", token)
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	tasks := decodeTasks(t, ctx)
	require.Len(t, tasks, 1)
	assert.Equal(t, "shared task", tasks[0].Title)
}

func TestLoginAndLogoutRoutes(t *testing.T) {
	api := newTestAPI(t)

	ctx := doRequest(api, http.MethodPost, "/login", `{"email":"test@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgCredentialsNeeded, messageOf(t, ctx))

	ctx = doRequest(api, http.MethodPost, "/login", `{"email":"test@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgCredentialMismatch, messageOf(t, ctx))

	ctx = doRequest(api, http.MethodPost, "/logout", "", "")
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, transport.MsgLogoutSuccess, messageOf(t, ctx))
}

func TestUnknownIDRoutes(t *testing.T) {
	api := newTestAPI(t)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		body := ""
		if method == http.MethodPatch {
			body = `{"title":"x"}`
		}
		ctx := doRequest(api, method, "/tasks/00000000-0000-0000-0000-000000000000", body, "")
		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode(), method)
		assert.Equal(t, transport.MsgTaskNotFound, messageOf(t, ctx), method)
	}
}
