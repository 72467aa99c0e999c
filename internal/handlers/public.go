package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

// PublicHandler serves the browsable raffle catalog
type PublicHandler struct {
	raffleService services.RaffleService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(raffleService services.RaffleService) *PublicHandler {
	return &PublicHandler{raffleService: raffleService}
}

// ListRaffles returns the raffle list
func (h *PublicHandler) ListRaffles(w http.ResponseWriter, r *http.Request) {
	raffles, err := h.raffleService.ListRaffles(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, services.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"raffles": raffles})
}

// GetRaffle returns one raffle
func (h *PublicHandler) GetRaffle(w http.ResponseWriter, r *http.Request) {
	raffle, err := h.raffleService.GetRaffle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrRaffleNotFound) {
			writeJSONError(w, http.StatusNotFound, "Raffle not found")
			return
		}
		writeJSONError(w, http.StatusBadGateway, services.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"raffle": raffle})
}

// GetRaffleNumbers returns the availability grid for the number picker
func (h *PublicHandler) GetRaffleNumbers(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.raffleService.GetRaffleNumbers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, services.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"numbers": numbers})
}
