package models

import "time"

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation represents a time-boxed, backend-issued claim on a set of
// raffle ticket numbers. The backend owns the record; the frontend holds a
// cached copy. It is only payable while Status is pending and the expiry
// instant has not passed.
type Reservation struct {
	ID          string            `json:"id"`
	RaffleID    string            `json:"raffle_id"`
	UserID      string            `json:"user_id"`
	NumberIDs   []string          `json:"number_ids"`
	Status      ReservationStatus `json:"status"`
	SessionID   string            `json:"session_id"`
	TotalAmount int               `json:"total_amount"` // in cents
	ExpiresAt   time.Time         `json:"expires_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IsActionableAt reports whether the reservation can still be paid at the
// given instant.
func (r *Reservation) IsActionableAt(now time.Time) bool {
	if r == nil {
		return false
	}
	return r.Status == ReservationPending && now.Before(r.ExpiresAt)
}
