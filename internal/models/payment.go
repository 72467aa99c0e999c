package models

import "time"

// PaymentStatus represents the lifecycle state of a payment record
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment represents a backend-owned payment record tied to a reservation
type Payment struct {
	ID            string        `json:"id"`
	ReservationID string        `json:"reservation_id"`
	UserID        string        `json:"user_id"`
	Amount        int           `json:"amount"` // in cents
	Status        PaymentStatus `json:"status"`
	Provider      string        `json:"provider"`
	Reference     string        `json:"reference"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PaymentIntent carries the external processor handoff for a payment.
// ClientSecret holds the processor's approval URL; the checkout flow
// performs a full browser redirect to it rather than embedding payment UI.
type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
	Provider     string `json:"provider,omitempty"`
	Reference    string `json:"reference,omitempty"`
}
