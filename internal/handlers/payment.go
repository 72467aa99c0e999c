package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/cartstore"
	"raffle-marketplace-frontend/internal/checkout"
	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

// PaymentHandler lands the browser after the external processor redirects
// back, and reports the reservation's outcome
type PaymentHandler struct {
	reservations services.ReservationService
	manager      *checkout.Manager
	store        cartstore.Store
	sessionStore sessions.Store
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	reservations services.ReservationService,
	manager *checkout.Manager,
	store cartstore.Store,
	sessionStore sessions.Store,
) *PaymentHandler {
	return &PaymentHandler{
		reservations: reservations,
		manager:      manager,
		store:        store,
		sessionStore: sessionStore,
	}
}

// Return handles the processor's success redirect. The reservation is
// polled for its post-payment status; a confirmed reservation ends the
// checkout and empties the cart.
func (h *PaymentHandler) Return(w http.ResponseWriter, r *http.Request) {
	reservationID := r.URL.Query().Get("reservation_id")
	if reservationID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing reservation id")
		return
	}

	res, err := h.reservations.GetReservation(r.Context(), reservationID)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, services.UserMessage(err))
		return
	}

	if res.Status == models.ReservationConfirmed {
		h.finishCheckout(w, r)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservation": res,
		"completed":   res.Status == models.ReservationConfirmed,
	})
}

// Cancel handles the processor's cancel redirect. The reservation may
// still be payable, so the cart and flow are left alone; the user returns
// to checkout and can retry until the countdown runs out.
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

func (h *PaymentHandler) finishCheckout(w http.ResponseWriter, r *http.Request) {
	if cartID, err := cartstore.CartID(h.sessionStore, w, r); err == nil {
		h.manager.Remove(cartID)
	}

	cart, err := h.store.Load(r)
	if err != nil {
		return
	}
	cart.ClearReservation()
	cart.ClearNumbers()
	h.store.Save(w, r, cart)
}
