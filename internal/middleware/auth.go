package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

const (
	userSessionKey  = "user"
	tokenSessionKey = "token"
)

// AuthMiddleware loads the backend-issued identity from the session and
// guards authenticated routes
type AuthMiddleware struct {
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{store: store}
}

// LoadUser puts the session's user and backend token into the request
// context. Requests without a valid session continue anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := session.Values[userSessionKey].(string)
		if !ok || raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == "" {
			// Unreadable identity: drop it so the session heals itself
			delete(session.Values, userSessionKey)
			delete(session.Values, tokenSessionKey)
			session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, &user)
		if token, ok := session.Values[tokenSessionKey].(string); ok && token != "" {
			ctx = services.WithToken(ctx, token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth ensures the request carries an authenticated user, sending
// everyone else to the login page
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/auth/login?redirect="+r.URL.Path, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the authenticated user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// StoreIdentity writes a backend login result into the session
func StoreIdentity(store sessions.Store, w http.ResponseWriter, r *http.Request, user *models.User, token string) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	session.Values[userSessionKey] = string(data)
	session.Values[tokenSessionKey] = token
	return session.Save(r, w)
}

// ClearIdentity removes the identity from the session, leaving other
// session state (the cart) in place
func ClearIdentity(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return err
	}
	delete(session.Values, userSessionKey)
	delete(session.Values, tokenSessionKey)
	return session.Save(r, w)
}
