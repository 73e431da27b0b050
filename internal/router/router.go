package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/simpletask/backend/api/handler"
)

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Auth   *apiHandler.AuthHandler
	Health *apiHandler.HealthHandler
}

// New binds the route table. sessionAuth gates the protected task listing;
// loginLimit may be nil, in which case /login is unthrottled.
func New(handlers Handlers, sessionAuth, loginLimit Middleware) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/tasks", handlers.Task.List)
	r.GET("/tasks/{id}", handlers.Task.Get)
	r.POST("/tasks", handlers.Task.Create)
	r.PATCH("/tasks/{id}", handlers.Task.Update)
	r.DELETE("/tasks/{id}", handlers.Task.Delete)

	login := handlers.Auth.Login
	if loginLimit != nil {
		login = loginLimit(login)
	}
	r.POST("/login", login)
	r.POST("/logout", handlers.Auth.Logout)

	r.GET("/auth/tasks", sessionAuth(handlers.Task.List))

	return r
}
