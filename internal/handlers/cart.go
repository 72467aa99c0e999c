package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"raffle-marketplace-frontend/internal/cartstore"
	"raffle-marketplace-frontend/internal/checkout"
	"raffle-marketplace-frontend/internal/middleware"
	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

// CartHandler manages the pick set: which raffle is in context and which
// numbers the user has tentatively selected
type CartHandler struct {
	raffleService services.RaffleService
	store         cartstore.Store
	sessionStore  sessions.Store
	manager       *checkout.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(
	raffleService services.RaffleService,
	store cartstore.Store,
	sessionStore sessions.Store,
	manager *checkout.Manager,
) *CartHandler {
	return &CartHandler{
		raffleService: raffleService,
		store:         store,
		sessionStore:  sessionStore,
		manager:       manager,
	}
}

type cartResponse struct {
	Cart        *models.CartState `json:"cart"`
	SelectedIDs []string          `json:"selected_ids"`
	Count       int               `json:"count"`
	TotalAmount int               `json:"total_amount"`
	Active      bool              `json:"reservation_active"`
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, cart *models.CartState, status int) {
	unitPrice := 0
	if cart.CurrentRaffleID != "" {
		if raffle, err := h.raffleService.GetRaffle(r.Context(), cart.CurrentRaffleID); err == nil {
			unitPrice = raffle.TicketPrice
		}
	}
	total := cart.TotalAmount(unitPrice)
	if cart.ActiveReservation != nil {
		total = cart.ActiveReservation.TotalAmount
	}
	writeJSON(w, status, cartResponse{
		Cart:        cart,
		SelectedIDs: cart.SelectedIDs(),
		Count:       cart.SelectedCount(),
		TotalAmount: total,
		Active:      cart.IsReservationActive(),
	})
}

// ViewCart returns the current cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	h.respondCart(w, r, cart, http.StatusOK)
}

// SetRaffle switches the cart's raffle context. Picks are scoped to one
// raffle, so a genuine switch discards them.
func (h *CartHandler) SetRaffle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RaffleID string `json:"raffle_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.RaffleID == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid raffle id")
		return
	}

	raffle, err := h.raffleService.GetRaffle(r.Context(), req.RaffleID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Raffle not found")
		return
	}
	if !raffle.IsActive() {
		writeJSONError(w, http.StatusUnprocessableEntity, "Raffle is not active")
		return
	}

	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	cart.SetCurrentRaffle(raffle.ID)
	if err := h.store.Save(w, r, cart); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	h.respondCart(w, r, cart, http.StatusOK)
}

// AddNumber adds a number to the pick set
func (h *CartHandler) AddNumber(w http.ResponseWriter, r *http.Request) {
	h.mutateNumber(w, r, func(cart *models.CartState, n models.SelectedNumber) {
		cart.AddNumber(n)
	})
}

// ToggleNumber adds the number if absent, removes it if present
func (h *CartHandler) ToggleNumber(w http.ResponseWriter, r *http.Request) {
	h.mutateNumber(w, r, func(cart *models.CartState, n models.SelectedNumber) {
		cart.ToggleNumber(n)
	})
}

func (h *CartHandler) mutateNumber(w http.ResponseWriter, r *http.Request, apply func(*models.CartState, models.SelectedNumber)) {
	if middleware.GetUserFromContext(r.Context()) == nil {
		writeJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		RaffleID      string `json:"raffle_id"`
		ID            string `json:"id"`
		DisplayNumber string `json:"display_number"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ID == "" || req.RaffleID == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid number selection")
		return
	}

	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	// Picking while a reservation is still payable would violate the
	// one-phase-at-a-time rule
	if cart.IsReservationActive() {
		writeJSONError(w, http.StatusConflict, "A reservation is already in progress")
		return
	}

	cart.SetCurrentRaffle(req.RaffleID)
	apply(cart, models.SelectedNumber{ID: req.ID, DisplayNumber: req.DisplayNumber})

	if err := h.store.Save(w, r, cart); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	h.respondCart(w, r, cart, http.StatusOK)
}

// RemoveNumber removes one number from the pick set
func (h *CartHandler) RemoveNumber(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Invalid number id")
		return
	}

	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	cart.RemoveNumber(id)
	if err := h.store.Save(w, r, cart); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	h.respondCart(w, r, cart, http.StatusOK)
}

// ClearCart empties the pick set, drops any cached reservation, and tears
// down the live checkout flow. The persisted cart and the flow registry
// must agree: leaving the flow behind would keep serving the old reserved
// state against a cart that no longer holds it.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.Load(r)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	if cartID, err := cartstore.CartID(h.sessionStore, w, r); err == nil {
		h.manager.Remove(cartID)
	}
	cart.ClearNumbers()
	cart.ClearReservation()
	if err := h.store.Save(w, r, cart); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to save cart")
		return
	}
	h.respondCart(w, r, cart, http.StatusOK)
}
