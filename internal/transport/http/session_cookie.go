package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookieName identifies the browsing session.
const SessionCookieName = "quizbabu_sid"

type sessionKey struct{}

// SessionCookie makes sure every request carries a browsing session id,
// issuing a new one when the cookie is missing or not a uuid.
func SessionCookie(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sid = id.String()
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sid)))
		})
	}
}

// SessionID returns the id set by SessionCookie.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}
