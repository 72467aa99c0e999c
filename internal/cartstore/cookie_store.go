package cartstore

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/models"
)

// CookieStore keeps the cart in the visitor's cookie session as a JSON
// string under a single key. This is the default backend: durable across
// reloads with no server-side state.
type CookieStore struct {
	store sessions.Store
}

// NewCookieStore creates a cookie-backed cart store
func NewCookieStore(store sessions.Store) *CookieStore {
	return &CookieStore{store: store}
}

func (s *CookieStore) Load(r *http.Request) (*models.CartState, error) {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return models.NewCartState(), nil
	}

	raw, ok := session.Values[cartKey].(string)
	if !ok || raw == "" {
		return models.NewCartState(), nil
	}

	cart := models.NewCartState()
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		// A corrupt blob falls back to an empty cart rather than failing
		// the request
		return models.NewCartState(), nil
	}
	return cart, nil
}

func (s *CookieStore) Save(w http.ResponseWriter, r *http.Request, cart *models.CartState) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	session.Values[cartKey] = string(data)
	return session.Save(r, w)
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return err
	}
	delete(session.Values, cartKey)
	return session.Save(r, w)
}
