package cartstore

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-marketplace-frontend/internal/models"
)

func newTestSessionStore() sessions.Store {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
}

// carryCookies copies the Set-Cookie output of one response onto a fresh
// request, simulating a page reload
func carryCookies(t *testing.T, w *httptest.ResponseRecorder, method, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp := w.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore(newTestSessionStore())

	cart := models.NewCartState()
	cart.SetCurrentRaffle("raffle-1")
	cart.AddNumber(models.SelectedNumber{ID: "n-7", DisplayNumber: "007"})
	expiry := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	cart.SetReservation(&models.Reservation{
		ID:        "res-1",
		Status:    models.ReservationPending,
		ExpiresAt: expiry,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	require.NoError(t, store.Save(w, req, cart))

	// "Reload": a fresh request carrying only the cookies
	restored, err := store.Load(carryCookies(t, w, http.MethodGet, "/cart"))
	require.NoError(t, err)

	assert.Equal(t, "raffle-1", restored.CurrentRaffleID)
	assert.Equal(t, 0, restored.SelectedCount(), "picks graduated into the reservation before saving")
	require.NotNil(t, restored.ActiveReservation)
	assert.Equal(t, "res-1", restored.ActiveReservation.ID)
	require.NotNil(t, restored.ReservationExpiry)
	assert.True(t, restored.ReservationExpiry.Equal(expiry), "expiry must rehydrate as a time value")
}

func TestCookieStore_LoadMissingOrCorrupt(t *testing.T) {
	sessionStore := newTestSessionStore()
	store := NewCookieStore(sessionStore)

	// Missing cart
	cart, err := store.Load(httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// Corrupt blob
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	session, err := sessionStore.Get(req, SessionName)
	require.NoError(t, err)
	session.Values["cart"] = "{not json"
	require.NoError(t, session.Save(req, w))

	cart, err = store.Load(carryCookies(t, w, http.MethodGet, "/cart"))
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty(), "a corrupt blob yields a fresh cart")
}

func TestCookieStore_Clear(t *testing.T) {
	store := NewCookieStore(newTestSessionStore())

	cart := models.NewCartState()
	cart.AddNumber(models.SelectedNumber{ID: "n-1", DisplayNumber: "001"})

	w := httptest.NewRecorder()
	require.NoError(t, store.Save(w, httptest.NewRequest(http.MethodPost, "/cart", nil), cart))

	req := carryCookies(t, w, http.MethodPost, "/cart/clear")
	w2 := httptest.NewRecorder()
	require.NoError(t, store.Clear(w2, req))

	restored, err := store.Load(carryCookies(t, w2, http.MethodGet, "/cart"))
	require.NoError(t, err)
	assert.True(t, restored.IsEmpty())
}

func TestCartID_StableAcrossRequests(t *testing.T) {
	sessionStore := newTestSessionStore()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	first, err := CartID(sessionStore, w, req)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := CartID(sessionStore, httptest.NewRecorder(), carryCookies(t, w, http.MethodGet, "/"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "the cart id must survive across requests")
}
