package models

import "time"

// SelectedNumber represents one ticket number the user has tentatively
// picked but not yet reserved
type SelectedNumber struct {
	ID            string `json:"id"`
	DisplayNumber string `json:"display_number"`
}

// CartState holds the pick set and the active reservation for one visitor.
// A set of numbers is either being picked (SelectedNumbers) or already
// reserved (folded into ActiveReservation.NumberIDs), never both. All
// mutation goes through the methods below; callers must not write fields
// directly.
type CartState struct {
	CurrentRaffleID   string           `json:"current_raffle_id"`
	SelectedNumbers   []SelectedNumber `json:"selected_numbers"`
	ActiveReservation *Reservation     `json:"active_reservation"`
	ReservationExpiry *time.Time       `json:"reservation_expiry"`
}

// NewCartState returns an empty cart
func NewCartState() *CartState {
	return &CartState{}
}

// SetCurrentRaffle switches the raffle context. Picks are scoped to one
// raffle, so switching to a different id discards any in-progress picks.
// Setting the same id again is a no-op.
func (c *CartState) SetCurrentRaffle(raffleID string) {
	if c.CurrentRaffleID == raffleID {
		return
	}
	c.CurrentRaffleID = raffleID
	c.SelectedNumbers = nil
}

// AddNumber adds a number to the pick set. Adding an id that is already
// present is a no-op.
func (c *CartState) AddNumber(n SelectedNumber) {
	for _, existing := range c.SelectedNumbers {
		if existing.ID == n.ID {
			return
		}
	}
	c.SelectedNumbers = append(c.SelectedNumbers, n)
}

// RemoveNumber removes a number from the pick set by id
func (c *CartState) RemoveNumber(id string) {
	for i, existing := range c.SelectedNumbers {
		if existing.ID == id {
			c.SelectedNumbers = append(c.SelectedNumbers[:i], c.SelectedNumbers[i+1:]...)
			return
		}
	}
}

// ToggleNumber adds the number if absent, removes it if present
func (c *CartState) ToggleNumber(n SelectedNumber) {
	for i, existing := range c.SelectedNumbers {
		if existing.ID == n.ID {
			c.SelectedNumbers = append(c.SelectedNumbers[:i], c.SelectedNumbers[i+1:]...)
			return
		}
	}
	c.SelectedNumbers = append(c.SelectedNumbers, n)
}

// ClearNumbers empties the pick set
func (c *CartState) ClearNumbers() {
	c.SelectedNumbers = nil
}

// SetReservation stores the reservation, derives its expiry instant, and
// clears the pick set. The picks have graduated into the reservation.
func (c *CartState) SetReservation(res *Reservation) {
	c.ActiveReservation = res
	if res != nil {
		expiry := res.ExpiresAt
		c.ReservationExpiry = &expiry
	} else {
		c.ReservationExpiry = nil
	}
	c.SelectedNumbers = nil
}

// ClearReservation nulls the reservation and its derived expiry. The pick
// set is left untouched.
func (c *CartState) ClearReservation() {
	c.ActiveReservation = nil
	c.ReservationExpiry = nil
}

// IsReservationActive reports whether the stored reservation is still
// payable right now
func (c *CartState) IsReservationActive() bool {
	return c.IsReservationActiveAt(time.Now())
}

// IsReservationActiveAt reports whether the stored reservation is payable
// at the given instant: present, pending, and not past its expiry. The
// predicate is always derived, never stored.
func (c *CartState) IsReservationActiveAt(now time.Time) bool {
	if c.ActiveReservation == nil || c.ReservationExpiry == nil {
		return false
	}
	if c.ActiveReservation.Status != ReservationPending {
		return false
	}
	return now.Before(*c.ReservationExpiry)
}

// SelectedCount returns the number of picked numbers
func (c *CartState) SelectedCount() int {
	return len(c.SelectedNumbers)
}

// SelectedIDs returns the ids of the picked numbers in pick order
func (c *CartState) SelectedIDs() []string {
	ids := make([]string, 0, len(c.SelectedNumbers))
	for _, n := range c.SelectedNumbers {
		ids = append(ids, n.ID)
	}
	return ids
}

// TotalAmount returns the pick set total in cents. The unit price is
// raffle-specific and supplied by the caller; it is not cart state.
func (c *CartState) TotalAmount(unitPrice int) int {
	return len(c.SelectedNumbers) * unitPrice
}

// IsEmpty reports whether the cart holds neither picks nor a reservation
func (c *CartState) IsEmpty() bool {
	return len(c.SelectedNumbers) == 0 && c.ActiveReservation == nil
}

// Clone returns a deep copy sharing no memory with the original. Callers
// that hand the cart across goroutine boundaries, serializing it while the
// owner keeps mutating, must work on a clone.
func (c *CartState) Clone() *CartState {
	if c == nil {
		return nil
	}
	out := &CartState{CurrentRaffleID: c.CurrentRaffleID}
	if len(c.SelectedNumbers) > 0 {
		out.SelectedNumbers = append([]SelectedNumber(nil), c.SelectedNumbers...)
	}
	if c.ActiveReservation != nil {
		res := *c.ActiveReservation
		res.NumberIDs = append([]string(nil), c.ActiveReservation.NumberIDs...)
		out.ActiveReservation = &res
	}
	if c.ReservationExpiry != nil {
		expiry := *c.ReservationExpiry
		out.ReservationExpiry = &expiry
	}
	return out
}
