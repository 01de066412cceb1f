package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/session"
)

// RequireSignedIn guards mutating routes. Anonymous clients are redirected
// to the index with a flash message and the wrapped handler never runs.
func RequireSignedIn(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetSession(r.Context())
			if err := session.RequireAuthenticated(sess); err != nil {
				log.Info("unauthorized request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				sess.Flash(session.MsgSignInRequired)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
