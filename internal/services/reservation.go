package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"raffle-marketplace-frontend/internal/models"
)

// ReservationClient talks to the backend reservation endpoints
type ReservationClient struct {
	backendClient
}

// NewReservationClient creates a reservation client against the backend
// API origin
func NewReservationClient(baseURL, token string) *ReservationClient {
	return &ReservationClient{backendClient: newBackendClient(baseURL).withToken(token)}
}

type reservationEnvelope struct {
	Reservation *models.Reservation `json:"reservation"`
}

// CreateReservation atomically converts the picked numbers into a
// time-boxed reservation. The backend rejects the request when numbers are
// no longer available, the raffle is not active, or the numbers limit is
// exceeded; those failures surface as *APIError with the backend's message.
func (c *ReservationClient) CreateReservation(ctx context.Context, req *ReservationRequest) (*models.Reservation, error) {
	if req == nil || len(req.NumberIDs) == 0 {
		return nil, models.ErrEmptySelection
	}

	var resp reservationEnvelope
	if err := c.doJSON(ctx, http.MethodPost, "/reservations", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	if resp.Reservation == nil {
		return nil, fmt.Errorf("backend returned no reservation")
	}
	return resp.Reservation, nil
}

// GetReservation fetches the current state of a reservation. Used by the
// payment landing pages to poll for confirmation after the redirect.
func (c *ReservationClient) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	if id == "" {
		return nil, models.ErrReservationNotFound
	}

	var resp reservationEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/reservations/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	if resp.Reservation == nil {
		return nil, models.ErrReservationNotFound
	}
	return resp.Reservation, nil
}
