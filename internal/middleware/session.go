// Package middleware provides HTTP middlewares for sessions, authorization and logging.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/models"
	"github.com/atinyakov/docstore/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// Sessions loads the client's session into the request context and saves it
// once the handler returns. Clients without a valid cookie get a new session.
func Sessions(store session.Store, cookieName string, ttl time.Duration, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *models.Session
			if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
				loaded, err := store.Load(ctx, c.Value)
				switch {
				case err == nil:
					sess = loaded
				case errors.Is(err, session.ErrSessionNotFound):
				default:
					log.Error("failed to load session", zap.Error(err))
				}
			}
			if sess == nil {
				sess = &models.Session{ID: uuid.NewString()}
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(ttl.Seconds()),
			})

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))

			// the request context may already be cancelled
			if err := store.Save(context.WithoutCancel(ctx), sess); err != nil {
				log.Error("failed to save session", zap.String("session", sess.ID), zap.Error(err))
			}
		})
	}
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession extracts the session from the request context. Requests that
// did not pass through Sessions get a throwaway anonymous session.
func GetSession(ctx context.Context) *models.Session {
	if s, ok := ctx.Value(sessionKey).(*models.Session); ok && s != nil {
		return s
	}
	return &models.Session{}
}
