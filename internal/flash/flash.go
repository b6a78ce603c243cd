// Package flash keeps one-shot user messages between a POST and the page the
// user is redirected to.
package flash

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const CookieName = "fyyur_session"

type Store interface {
	Add(ctx context.Context, sessionID, message string) error
	// Pop returns and clears all pending messages, oldest first.
	Pop(ctx context.Context, sessionID string) ([]string, error)
}

type contextKey string

const sessionKey contextKey = "flash_session"

// Session makes sure every request carries a session cookie and stores its
// id in the request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sid)))
	})
}

func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
