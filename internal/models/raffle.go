package models

import "time"

// RaffleStatus represents the publication state of a raffle
type RaffleStatus string

const (
	RaffleDraft     RaffleStatus = "draft"
	RaffleActive    RaffleStatus = "active"
	RaffleSoldOut   RaffleStatus = "sold_out"
	RaffleDrawn     RaffleStatus = "drawn"
	RaffleCancelled RaffleStatus = "cancelled"
)

// Raffle represents a raffle as served by the backend API
type Raffle struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	TicketPrice  int          `json:"ticket_price"` // in cents, per number
	TotalNumbers int          `json:"total_numbers"`
	SoldNumbers  int          `json:"sold_numbers"`
	Status       RaffleStatus `json:"status"`
	DrawDate     *time.Time   `json:"draw_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// IsActive reports whether tickets for the raffle can currently be reserved
func (r *Raffle) IsActive() bool {
	return r != nil && r.Status == RaffleActive
}

// RaffleNumber represents one numbered ticket slot in a raffle's grid
type RaffleNumber struct {
	ID            string `json:"id"`
	RaffleID      string `json:"raffle_id"`
	DisplayNumber string `json:"display_number"`
	Available     bool   `json:"available"`
}
