package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session shared by auth and the cart store
const SessionName = "session"

// NewSessionStore creates the cookie session store with the options every
// request relies on
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
