package auth

import (
	"net/http"
	"strings"

	"clientportal/internal/models"
)

// SessionSource reports the portal's current session.
type SessionSource interface {
	Current() (models.Session, bool)
}

// TokenFromRequest reads the bearer header first, then the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireSession admits a request only while a session exists and the
// request carries a token issued for that same session. Page loads are
// sent to /login; other requests get 401.
func RequireSession(sessions SessionSource, signer *Signer, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.Current()
			if !ok {
				deny(w, r, "no active session")
				return
			}
			raw := TokenFromRequest(r, cookieName)
			if raw == "" {
				deny(w, r, "missing token")
				return
			}
			claims, err := signer.Verify(raw)
			if err != nil {
				deny(w, r, "invalid token")
				return
			}
			if claims.SessionID != sess.SessionID {
				deny(w, r, "session expired")
				return
			}
			ctx := WithSession(WithClaims(r.Context(), claims), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, msg string) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Error(w, msg, http.StatusUnauthorized)
}
