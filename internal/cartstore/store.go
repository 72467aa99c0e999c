// Package cartstore persists one CartState per visitor. The cart is
// written as a single JSON blob under one named entry regardless of
// backend; writes are last-writer-wins.
package cartstore

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/models"
)

const (
	// SessionName is the cookie session all stores share
	SessionName = "session"

	// cartKey is the single session entry holding the serialized cart
	cartKey = "cart"

	// cartIDKey holds the per-visitor cart id used by out-of-cookie backends
	cartIDKey = "cart_id"
)

// Store persists the cart across requests. Load never fails a request for
// a corrupt or missing cart; it returns a fresh one.
type Store interface {
	Load(r *http.Request) (*models.CartState, error)
	Save(w http.ResponseWriter, r *http.Request, cart *models.CartState) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// CartID returns the stable per-visitor cart id, minting one into the
// session on first use. The id keys redis entries and live checkout flows.
func CartID(sessionStore sessions.Store, w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := sessionStore.Get(r, SessionName)
	if err != nil {
		return "", err
	}
	if id, ok := session.Values[cartIDKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.New().String()
	session.Values[cartIDKey] = id
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return id, nil
}
