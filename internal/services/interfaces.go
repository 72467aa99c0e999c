package services

import (
	"context"

	"raffle-marketplace-frontend/internal/models"
)

// ReservationService converts a set of picked numbers into a time-boxed
// backend reservation and reads reservations back for polling
type ReservationService interface {
	CreateReservation(ctx context.Context, req *ReservationRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
}

// PaymentService creates payment intents against the backend. The returned
// intent carries the external processor's approval URL; the caller redirects
// the full browser to it.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResult, error)
}

// RaffleService reads raffle catalog data from the backend
type RaffleService interface {
	ListRaffles(ctx context.Context) ([]*models.Raffle, error)
	GetRaffle(ctx context.Context, id string) (*models.Raffle, error)
	GetRaffleNumbers(ctx context.Context, raffleID string) ([]*models.RaffleNumber, error)
}

// AuthService authenticates against the backend. Token refresh and account
// management belong to the backend; the frontend only needs login/logout.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// ReservationRequest is the payload for creating a reservation. SessionID
// is a client-generated token minted fresh per attempt so the backend can
// tell a retry apart from a duplicate of a still-pending earlier attempt.
type ReservationRequest struct {
	RaffleID  string   `json:"raffle_id"`
	NumberIDs []string `json:"number_ids"`
	SessionID string   `json:"session_id"`
}

// PaymentIntentRequest is the payload for creating a payment intent
type PaymentIntentRequest struct {
	ReservationID string `json:"reservation_id"`
	ReturnURL     string `json:"return_url"`
	CancelURL     string `json:"cancel_url"`
}

// PaymentIntentResult bundles the backend payment record with the
// processor handoff
type PaymentIntentResult struct {
	Payment       *models.Payment       `json:"payment"`
	PaymentIntent *models.PaymentIntent `json:"payment_intent"`
}

// ApprovalURL returns the external processor's redirect target. The
// backend overloads the intent's client_secret field to carry it.
func (r *PaymentIntentResult) ApprovalURL() string {
	if r == nil || r.PaymentIntent == nil {
		return ""
	}
	return r.PaymentIntent.ClientSecret
}

// LoginResult is the backend's response to a successful login
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}
