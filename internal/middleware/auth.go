package middleware

import (
	"net/http"

	"github.com/mwhitten/memento/internal/auth"
	"github.com/mwhitten/memento/internal/store"
)

const sessionCookieName = "memento_session"

// RequireAuth validates the session cookie and populates AuthContext.
// Unauthenticated requests get a bare 401; the SPA handles the redirect.
func RequireAuth(sessions store.SessionStore, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(sess.UserID)
			if err != nil || user == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ac := auth.AuthContext{
				UserID:    user.ID,
				Username:  user.Username,
				SessionID: sess.ID,
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
