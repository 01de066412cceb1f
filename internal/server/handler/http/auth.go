// Package http provides the HTTP handlers, views and routes of the document store.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/middleware"
	"github.com/atinyakov/docstore/internal/models"
	"github.com/atinyakov/docstore/internal/service"
	"github.com/atinyakov/docstore/internal/session"
)

// Flash messages of the authentication routes.
const (
	MsgWelcome            = "Welcome!"
	MsgInvalidCredentials = "Invalid credentials."
	MsgSignedOut          = "You have been signed out."
	MsgUsernameTaken      = "That username is already in use."
	MsgInvalidUsername    = "The username must not be empty."
)

// MsgInvalidPassword is shown when a signup password is too short or too long.
var MsgInvalidPassword = fmt.Sprintf("The password must be between %d and %d characters long.",
	service.MinPasswordLength, service.MaxPasswordLength)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Validate reports whether password is correct for username.
	Validate(ctx context.Context, username, password string) (bool, error)
	// Register creates a new user.
	Register(ctx context.Context, username, password string) error
}

// AuthHandler handles sign in, sign up and sign out.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	Views       *Views
	Log         *zap.Logger
}

// SignInForm shows the sign in form.
func (h *AuthHandler) SignInForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "signin", viewData{})
}

// SignIn checks the submitted credentials and signs the session in.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	username := r.FormValue("username")

	ok, err := h.AuthService.Validate(r.Context(), username, r.FormValue("password"))
	if err != nil {
		h.Log.Error("failed to validate credentials", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.Log.Info("failed sign in", zap.String("user", username))
		sess.Flash(MsgInvalidCredentials)
		h.Views.Render(w, r, http.StatusUnprocessableEntity, "signin", viewData{FormUsername: username})
		return
	}

	session.SignIn(sess, username)
	sess.Flash(MsgWelcome)
	http.Redirect(w, r, "/", http.StatusFound)
}

// SignUpForm shows the sign up form.
func (h *AuthHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "signup", viewData{})
}

// SignUp registers a new user and signs the session in as that user.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	username := r.FormValue("username")

	err := h.AuthService.Register(r.Context(), username, r.FormValue("password"))
	if err == nil {
		session.SignIn(sess, username)
		sess.Flash(MsgWelcome)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	switch {
	case errors.Is(err, models.ErrUsernameTaken):
		sess.Flash(MsgUsernameTaken)
	case errors.Is(err, models.ErrInvalidUsername):
		sess.Flash(MsgInvalidUsername)
	case errors.Is(err, models.ErrInvalidPassword):
		sess.Flash(MsgInvalidPassword)
	default:
		h.Log.Error("failed to register user", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Views.Render(w, r, http.StatusUnprocessableEntity, "signup", viewData{FormUsername: username})
}

// SignOut returns the session to the anonymous state.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	session.SignOut(sess)
	sess.Flash(MsgSignedOut)
	http.Redirect(w, r, "/", http.StatusFound)
}
