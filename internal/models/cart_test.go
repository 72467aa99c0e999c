package models

import (
	"encoding/json"
	"testing"
	"time"
)

func pickedCart() *CartState {
	cart := NewCartState()
	cart.SetCurrentRaffle("raffle-1")
	cart.AddNumber(SelectedNumber{ID: "n-7", DisplayNumber: "007"})
	cart.AddNumber(SelectedNumber{ID: "n-13", DisplayNumber: "013"})
	return cart
}

func TestCartState_SetCurrentRaffle(t *testing.T) {
	cart := pickedCart()

	// Switching to a different raffle discards in-progress picks
	cart.SetCurrentRaffle("raffle-2")
	if got := cart.SelectedCount(); got != 0 {
		t.Errorf("expected empty pick set after raffle switch, got %d picks", got)
	}
	if cart.CurrentRaffleID != "raffle-2" {
		t.Errorf("expected raffle-2, got %s", cart.CurrentRaffleID)
	}

	// Setting the same id again leaves the pick set unchanged
	cart.AddNumber(SelectedNumber{ID: "n-1", DisplayNumber: "001"})
	cart.SetCurrentRaffle("raffle-2")
	if got := cart.SelectedCount(); got != 1 {
		t.Errorf("expected picks preserved for same raffle id, got %d picks", got)
	}
}

func TestCartState_AddNumberIdempotent(t *testing.T) {
	cart := pickedCart()

	cart.AddNumber(SelectedNumber{ID: "n-7", DisplayNumber: "007"})
	if got := cart.SelectedCount(); got != 2 {
		t.Errorf("adding a duplicate id should be a no-op, got %d picks", got)
	}
}

func TestCartState_ToggleNumber(t *testing.T) {
	cart := NewCartState()
	n := SelectedNumber{ID: "n-42", DisplayNumber: "042"}

	cart.ToggleNumber(n)
	if cart.SelectedCount() != 1 {
		t.Error("toggle on an absent number should add it")
	}
	cart.ToggleNumber(n)
	if cart.SelectedCount() != 0 {
		t.Error("toggle on a present number should remove it")
	}
}

func TestCartState_RemoveNumber(t *testing.T) {
	cart := pickedCart()

	cart.RemoveNumber("n-7")
	if got := cart.SelectedIDs(); len(got) != 1 || got[0] != "n-13" {
		t.Errorf("expected [n-13] after removal, got %v", got)
	}

	// Removing an unknown id is a no-op
	cart.RemoveNumber("n-99")
	if cart.SelectedCount() != 1 {
		t.Error("removing an unknown id should not change the pick set")
	}
}

func TestCartState_SetReservationGraduatesPicks(t *testing.T) {
	cart := pickedCart()
	expiresAt := time.Now().Add(10 * time.Minute).UTC()
	res := &Reservation{
		ID:        "res-1",
		RaffleID:  "raffle-1",
		NumberIDs: []string{"n-7", "n-13"},
		Status:    ReservationPending,
		ExpiresAt: expiresAt,
	}

	cart.SetReservation(res)

	if cart.SelectedCount() != 0 {
		t.Error("picks should be cleared once they graduate into a reservation")
	}
	if cart.ActiveReservation == nil || cart.ActiveReservation.ID != "res-1" {
		t.Error("expected the reservation to be stored")
	}
	if cart.ReservationExpiry == nil || !cart.ReservationExpiry.Equal(expiresAt) {
		t.Errorf("expected derived expiry %v, got %v", expiresAt, cart.ReservationExpiry)
	}
}

func TestCartState_ClearReservation(t *testing.T) {
	cart := NewCartState()
	cart.SetCurrentRaffle("raffle-1")
	cart.SetReservation(&Reservation{
		ID:        "res-1",
		Status:    ReservationPending,
		ExpiresAt: time.Now().Add(time.Minute),
	})
	cart.AddNumber(SelectedNumber{ID: "n-5", DisplayNumber: "005"})

	cart.ClearReservation()

	if cart.ActiveReservation != nil || cart.ReservationExpiry != nil {
		t.Error("expected reservation fields to be nulled")
	}
	if cart.SelectedCount() != 1 {
		t.Error("ClearReservation must leave the pick set untouched")
	}
}

func TestCartState_IsReservationActiveAt(t *testing.T) {
	now := time.Now()
	future := now.Add(10 * time.Minute)

	tests := []struct {
		name   string
		status ReservationStatus
		expiry time.Time
		at     time.Time
		want   bool
	}{
		{"pending before expiry", ReservationPending, future, now, true},
		{"pending at expiry", ReservationPending, future, future, false},
		{"pending after expiry", ReservationPending, future, future.Add(time.Second), false},
		{"confirmed", ReservationConfirmed, future, now, false},
		{"expired", ReservationExpired, future, now, false},
		{"cancelled", ReservationCancelled, future, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCartState()
			cart.SetReservation(&Reservation{
				ID:        "res-1",
				Status:    tt.status,
				ExpiresAt: tt.expiry,
			})
			if got := cart.IsReservationActiveAt(tt.at); got != tt.want {
				t.Errorf("IsReservationActiveAt() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("no reservation", func(t *testing.T) {
		cart := NewCartState()
		if cart.IsReservationActiveAt(now) {
			t.Error("an empty cart has no active reservation")
		}
	})
}

func TestCartState_TotalAmount(t *testing.T) {
	cart := pickedCart()
	if got := cart.TotalAmount(500); got != 1000 {
		t.Errorf("TotalAmount(500) = %d, want 1000", got)
	}
	cart.ClearNumbers()
	if got := cart.TotalAmount(500); got != 0 {
		t.Errorf("TotalAmount on empty pick set = %d, want 0", got)
	}
}

func TestCartState_PersistenceRoundTrip(t *testing.T) {
	cart := NewCartState()
	cart.SetCurrentRaffle("raffle-1")
	expiresAt := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	cart.SetReservation(&Reservation{
		ID:        "res-1",
		RaffleID:  "raffle-1",
		NumberIDs: []string{"n-7"},
		Status:    ReservationPending,
		ExpiresAt: expiresAt,
	})

	data, err := json.Marshal(cart)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := NewCartState()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.CurrentRaffleID != "raffle-1" {
		t.Errorf("raffle id lost across serialization: %s", restored.CurrentRaffleID)
	}
	if restored.ReservationExpiry == nil || !restored.ReservationExpiry.Equal(expiresAt) {
		t.Errorf("expiry did not rehydrate as a time value: %v", restored.ReservationExpiry)
	}
	if !restored.IsReservationActiveAt(expiresAt.Add(-time.Minute)) {
		t.Error("restored reservation should still be active before its expiry")
	}
}

func TestCartState_Clone(t *testing.T) {
	cart := pickedCart()
	cart.SetReservation(&Reservation{
		ID:        "res-1",
		Status:    ReservationPending,
		NumberIDs: []string{"n-7", "n-13"},
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})

	clone := cart.Clone()

	// The reservation is copied, not shared
	clone.ActiveReservation.NumberIDs[0] = "mutated"
	if cart.ActiveReservation.NumberIDs[0] != "n-7" {
		t.Error("mutating the clone's reservation leaked into the original")
	}
	clone.AddNumber(SelectedNumber{ID: "n-99", DisplayNumber: "099"})
	if cart.SelectedCount() != 0 {
		t.Error("mutating the clone's pick set leaked into the original")
	}

	// The original can be torn down without touching the clone
	cart.ClearReservation()
	cart.SetCurrentRaffle("raffle-2")
	if clone.ActiveReservation == nil || clone.ActiveReservation.ID != "res-1" {
		t.Fatal("clone lost its reservation when the original was cleared")
	}
	if clone.ReservationExpiry == nil {
		t.Error("clone lost its derived expiry")
	}
	if clone.CurrentRaffleID != "raffle-1" {
		t.Errorf("expected clone to keep raffle-1, got %s", clone.CurrentRaffleID)
	}

	var nilCart *CartState
	if nilCart.Clone() != nil {
		t.Error("cloning a nil cart should yield nil")
	}
}
