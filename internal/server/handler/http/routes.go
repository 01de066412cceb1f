package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/atinyakov/docstore/internal/middleware"
	"github.com/atinyakov/docstore/internal/session"
)

// SessionOptions configures the session cookie.
type SessionOptions struct {
	Store      session.Store
	CookieName string
	TTL        time.Duration
}

// NewRouter constructs and returns an HTTP handler that serves the
// document store.
//
// Routes:
//
//	GET  /                 → docHandler.Index
//	GET  /users/signin     → authHandler.SignInForm
//	POST /users/signin     → authHandler.SignIn
//	GET  /users/signup     → authHandler.SignUpForm
//	POST /users/signup     → authHandler.SignUp
//	POST /users/signout    → authHandler.SignOut
//	GET  /new              → docHandler.NewForm    (signed in)
//	POST /new              → docHandler.Create     (signed in)
//	GET  /{file}           → docHandler.Show
//	GET  /{file}/edit      → docHandler.EditForm   (signed in)
//	POST /{file}           → docHandler.Update     (signed in)
//	POST /{file}/destroy   → docHandler.Destroy    (signed in)
//	POST /{file}/duplicate → docHandler.Duplicate  (signed in)
//
// Middleware chain (applied in order):
//  1. RequestID, Recoverer
//  2. WithRequestLogging(logger)
//  3. AllowContentType for form posts
//  4. Sessions: loads and saves the client session
//  5. RequireSignedIn: on every mutating route, before the handler runs
func NewRouter(
	authHandler *AuthHandler,
	docHandler *DocumentHandler,
	sessions SessionOptions,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))
	r.Use(middleware.Sessions(sessions.Store, sessions.CookieName, sessions.TTL, logger))

	// Public endpoints
	r.Get("/", docHandler.Index)
	r.Get("/users/signin", authHandler.SignInForm)
	r.Post("/users/signin", authHandler.SignIn)
	r.Get("/users/signup", authHandler.SignUpForm)
	r.Post("/users/signup", authHandler.SignUp)
	r.Post("/users/signout", authHandler.SignOut)
	r.Get("/{file}", docHandler.Show)

	// Protected group: requires a signed-in session
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSignedIn(logger))

		r.Get("/new", docHandler.NewForm)
		r.Post("/new", docHandler.Create)
		r.Get("/{file}/edit", docHandler.EditForm)
		r.Post("/{file}", docHandler.Update)
		r.Post("/{file}/destroy", docHandler.Destroy)
		r.Post("/{file}/duplicate", docHandler.Duplicate)
	})

	return r
}
