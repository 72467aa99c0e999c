package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/cartstore"
	"raffle-marketplace-frontend/internal/checkout"
	"raffle-marketplace-frontend/internal/middleware"
	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

// CheckoutHandler drives the reservation-to-payment flow over HTTP. Each
// visitor's live flow is keyed by their cart id; the countdown runs
// server-side between requests.
type CheckoutHandler struct {
	manager       *checkout.Manager
	store         cartstore.Store
	sessionStore  sessions.Store
	raffleService services.RaffleService
	expiredDelay  time.Duration
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(
	manager *checkout.Manager,
	store cartstore.Store,
	sessionStore sessions.Store,
	raffleService services.RaffleService,
	expiredDelay time.Duration,
) *CheckoutHandler {
	if expiredDelay <= 0 {
		expiredDelay = 5 * time.Second
	}
	return &CheckoutHandler{
		manager:       manager,
		store:         store,
		sessionStore:  sessionStore,
		raffleService: raffleService,
		expiredDelay:  expiredDelay,
	}
}

type checkoutResponse struct {
	checkout.Snapshot
	RedirectURL     string `json:"redirect_url,omitempty"`
	RedirectAfterMS int64  `json:"redirect_after_ms,omitempty"`
}

// flowForRequest resolves the live flow for this visitor, creating one
// when checkout is being entered. A nil flow with no error means the guard
// failed and a redirect was already written.
func (h *CheckoutHandler) flowForRequest(w http.ResponseWriter, r *http.Request) (*checkout.Flow, string) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/auth/login?redirect=/checkout", http.StatusSeeOther)
		return nil, ""
	}

	cartID, err := cartstore.CartID(h.sessionStore, w, r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Session error")
		return nil, ""
	}

	if flow, ok := h.manager.Get(cartID); ok {
		return flow, cartID
	}

	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return nil, ""
	}
	if cart.IsEmpty() {
		// Entering checkout without picks or a reservation is a guard
		// violation, not a flow state
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return nil, ""
	}

	unitPrice := 0
	if cart.CurrentRaffleID != "" {
		if raffle, err := h.raffleService.GetRaffle(r.Context(), cart.CurrentRaffleID); err == nil {
			unitPrice = raffle.TicketPrice
		}
	}

	flow, err := h.manager.Begin(cartID, cart, user, unitPrice)
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return nil, ""
	}
	return flow, cartID
}

func (h *CheckoutHandler) respondFlow(w http.ResponseWriter, r *http.Request, flow *checkout.Flow, cartID string, status int) {
	snap := flow.Snapshot()
	resp := checkoutResponse{Snapshot: snap}

	if snap.State == checkout.StateExpired {
		// The expired screen lingers briefly, then the client navigates
		// away. The persisted cart is cleared here: a timed-out
		// reservation's numbers were released server-side and must not be
		// offered for retry.
		if err := h.store.Save(w, r, flow.Cart()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
			return
		}
		h.manager.Remove(cartID)
		resp.RedirectURL = "/raffles"
		resp.RedirectAfterMS = h.expiredDelay.Milliseconds()
		writeJSON(w, http.StatusGone, resp)
		return
	}

	writeJSON(w, status, resp)
}

// Show reports the current checkout state
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	flow, cartID := h.flowForRequest(w, r)
	if flow == nil {
		return
	}
	h.respondFlow(w, r, flow, cartID, http.StatusOK)
}

// Reserve converts the pick set into a backend reservation
func (h *CheckoutHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	flow, cartID := h.flowForRequest(w, r)
	if flow == nil {
		return
	}

	err := flow.ConfirmReservation(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTransition):
			h.respondFlow(w, r, flow, cartID, http.StatusConflict)
		case errors.Is(err, models.ErrEmptySelection):
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
		default:
			// The flow rolled back to review with the message surfaced;
			// report it and keep the user able to retry
			h.respondFlow(w, r, flow, cartID, http.StatusUnprocessableEntity)
		}
		return
	}

	if err := h.store.Save(w, r, flow.Cart()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	h.respondFlow(w, r, flow, cartID, http.StatusCreated)
}

// Pay creates the payment intent and sends the browser to the external
// processor's approval page
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	flow, cartID := h.flowForRequest(w, r)
	if flow == nil {
		return
	}

	approvalURL, err := flow.ProceedToPayment(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrReservationExpired):
			h.respondFlow(w, r, flow, cartID, http.StatusGone)
		case errors.Is(err, models.ErrInvalidTransition):
			h.respondFlow(w, r, flow, cartID, http.StatusConflict)
		default:
			h.respondFlow(w, r, flow, cartID, http.StatusUnprocessableEntity)
		}
		return
	}

	if err := h.store.Save(w, r, flow.Cart()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}

	// Full browser navigation: this is a redirect-based payment flow
	http.Redirect(w, r, approvalURL, http.StatusSeeOther)
}

// Cancel abandons the checkout flow, keeping the cart as it stands
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartstore.CartID(h.sessionStore, w, r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Session error")
		return
	}
	h.manager.Remove(cartID)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
