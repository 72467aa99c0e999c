// Package checkout drives the reservation-to-payment flow as a linear
// state machine: review → reserving → reserved → creating_payment →
// payment_ready, with an absorbing expired state armed by a countdown
// against the reservation's expiry instant.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"raffle-marketplace-frontend/internal/countdown"
	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

// State identifies one step of the checkout flow. The set is closed:
// a flow is always in exactly one of these.
type State int

const (
	StateReview State = iota
	StateReserving
	StateReserved
	StateCreatingPayment
	StatePaymentReady
	StateExpired
)

var stateNames = map[State]string{
	StateReview:          "review",
	StateReserving:       "reserving",
	StateReserved:        "reserved",
	StateCreatingPayment: "creating_payment",
	StatePaymentReady:    "payment_ready",
	StateExpired:         "expired",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalJSON renders the state as its wire name
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Config assembles a Flow's collaborators
type Config struct {
	Cart         *models.CartState
	User         *models.User
	UnitPrice    int // ticket price in cents for the current raffle
	Reservations services.ReservationService
	Payments     services.PaymentService
	ReturnURL    string
	CancelURL    string

	// OnExpired runs after the flow enters the expired state and the cart
	// fields have been cleared; used to purge out-of-band persistence.
	OnExpired func(cart *models.CartState)

	// TimerInterval and Clock override the countdown cadence; tests use
	// them to observe expiry without real waits.
	TimerInterval time.Duration
	Clock         func() time.Time
}

// Flow is the checkout controller for one cart. All transitions are
// serialized behind its mutex; the state machine itself prevents a second
// in-flight request of the same kind. Network calls run outside the lock.
type Flow struct {
	mu          sync.Mutex
	state       State
	cart        *models.CartState
	user        *models.User
	unitPrice   int
	errMsg      string
	approvalURL string
	remaining   countdown.Remaining

	timer        *countdown.Timer
	reservations services.ReservationService
	payments     services.PaymentService
	returnURL    string
	cancelURL    string
	onExpired    func(*models.CartState)
	now          func() time.Time
}

// New creates a flow for the given cart. Preconditions are guards, not
// states: the caller must be authenticated and the cart must hold either
// picked numbers or an already-active reservation; otherwise the caller is
// expected to redirect away from checkout.
func New(cfg Config) (*Flow, error) {
	if cfg.User == nil {
		return nil, models.ErrUnauthorized
	}
	if cfg.Cart == nil {
		return nil, models.ErrEmptySelection
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	timerOpts := []countdown.Option{countdown.WithClock(now)}
	if cfg.TimerInterval > 0 {
		timerOpts = append(timerOpts, countdown.WithInterval(cfg.TimerInterval))
	}

	f := &Flow{
		state:        StateReview,
		cart:         cfg.Cart,
		user:         cfg.User,
		unitPrice:    cfg.UnitPrice,
		timer:        countdown.New(timerOpts...),
		reservations: cfg.Reservations,
		payments:     cfg.Payments,
		returnURL:    cfg.ReturnURL,
		cancelURL:    cfg.CancelURL,
		onExpired:    cfg.OnExpired,
		now:          now,
	}

	switch {
	case cfg.Cart.IsReservationActiveAt(now()):
		// Resume a still-payable reservation directly in the reserved state
		f.state = StateReserved
		f.armTimerLocked(*cfg.Cart.ReservationExpiry)
	case cfg.Cart.ActiveReservation != nil:
		// A stale reservation is terminal; drop it before deciding
		cfg.Cart.ClearReservation()
		fallthrough
	default:
		if cfg.Cart.SelectedCount() == 0 {
			return nil, models.ErrEmptySelection
		}
	}

	return f, nil
}

// ConfirmReservation converts the pick set into a backend reservation.
// Only legal from review. A fresh session token is minted per attempt so a
// retry after a transient failure is never mistaken for a duplicate of a
// still-pending earlier attempt. On failure the flow rolls back to review
// with the error surfaced; on success it enters reserved and arms the
// countdown.
func (f *Flow) ConfirmReservation(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateReview {
		f.mu.Unlock()
		return fmt.Errorf("%w: cannot reserve from %s", models.ErrInvalidTransition, f.state)
	}
	if f.cart.SelectedCount() == 0 {
		f.mu.Unlock()
		return models.ErrEmptySelection
	}
	f.state = StateReserving
	f.errMsg = ""
	req := &services.ReservationRequest{
		RaffleID:  f.cart.CurrentRaffleID,
		NumberIDs: f.cart.SelectedIDs(),
		SessionID: uuid.New().String(),
	}
	f.mu.Unlock()

	res, err := f.reservations.CreateReservation(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateReserving {
		// The flow moved on (torn down) while the request was in flight
		return fmt.Errorf("%w: flow left reserving during request", models.ErrInvalidTransition)
	}
	if err != nil {
		f.state = StateReview
		f.errMsg = services.UserMessage(err)
		return err
	}

	f.cart.SetReservation(res)
	f.state = StateReserved
	f.armTimerLocked(res.ExpiresAt)
	return nil
}

// ProceedToPayment creates a payment intent for the active reservation and
// returns the external processor's approval URL for the browser redirect.
// Only legal from reserved. On failure the flow rolls back to reserved with
// the error surfaced so the user can retry.
func (f *Flow) ProceedToPayment(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.state != StateReserved {
		f.mu.Unlock()
		return "", fmt.Errorf("%w: cannot pay from %s", models.ErrInvalidTransition, f.state)
	}
	if !f.cart.IsReservationActiveAt(f.now()) {
		f.mu.Unlock()
		f.expire()
		return "", models.ErrReservationExpired
	}
	f.state = StateCreatingPayment
	f.errMsg = ""
	req := &services.PaymentIntentRequest{
		ReservationID: f.cart.ActiveReservation.ID,
		ReturnURL:     f.returnURL,
		CancelURL:     f.cancelURL,
	}
	f.mu.Unlock()

	result, err := f.payments.CreatePaymentIntent(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateExpired {
		// The countdown fired while the request was in flight
		return "", models.ErrReservationExpired
	}
	if err != nil {
		f.state = StateReserved
		f.errMsg = services.UserMessage(err)
		return "", err
	}

	f.state = StatePaymentReady
	f.approvalURL = result.ApprovalURL()
	f.timer.Stop()
	return f.approvalURL, nil
}

// Close tears the flow down: the countdown stops and no expiry callback
// fires afterwards. Safe to call more than once.
func (f *Flow) Close() {
	f.timer.Stop()
}

// expire moves the flow to the absorbing expired state. A timed-out
// reservation's numbers are released server-side, so both the reservation
// and the pick set are cleared; offering them for retry would sell numbers
// the backend already freed. Re-entering expired is a no-op.
func (f *Flow) expire() {
	f.mu.Lock()
	if f.state == StateExpired || f.state == StatePaymentReady {
		f.mu.Unlock()
		return
	}
	f.state = StateExpired
	f.remaining = 0
	f.cart.ClearReservation()
	f.cart.ClearNumbers()
	f.timer.Stop()
	hook := f.onExpired
	cart := f.cart.Clone()
	f.mu.Unlock()

	if hook != nil {
		hook(cart)
	}
}

func (f *Flow) armTimerLocked(expiry time.Time) {
	remaining := expiry.Sub(f.now())
	if remaining < 0 {
		remaining = 0
	}
	f.remaining = countdown.Remaining(remaining)
	f.timer.Start(expiry, f.setRemaining, f.expire)
}

func (f *Flow) setRemaining(r countdown.Remaining) {
	f.mu.Lock()
	f.remaining = r
	f.mu.Unlock()
}

// State returns the current flow state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Cart returns a deep copy of the flow's cart, taken under the lock. The
// live cart is mutated by the countdown goroutine when the reservation
// expires, so callers get a snapshot that is safe to serialize and persist.
func (f *Flow) Cart() *models.CartState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.Clone()
}

// Snapshot is a consistent, copyable view of the flow for rendering
type Snapshot struct {
	State         State                `json:"state"`
	ErrorMessage  string               `json:"error,omitempty"`
	ApprovalURL   string               `json:"approval_url,omitempty"`
	Remaining     string               `json:"remaining"`
	RemainingMS   int64                `json:"remaining_ms"`
	Urgent        bool                 `json:"urgent"`
	Reservation   *models.Reservation  `json:"reservation,omitempty"`
	SelectedCount int                  `json:"selected_count"`
	TotalAmount   int                  `json:"total_amount"`
}

// Snapshot returns the current view of the flow
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := f.cart.TotalAmount(f.unitPrice)
	if f.cart.ActiveReservation != nil {
		total = f.cart.ActiveReservation.TotalAmount
	}
	return Snapshot{
		State:         f.state,
		ErrorMessage:  f.errMsg,
		ApprovalURL:   f.approvalURL,
		Remaining:     f.remaining.Display(),
		RemainingMS:   f.remaining.Duration().Milliseconds(),
		Urgent:        f.remaining.Urgent(),
		Reservation:   f.cart.ActiveReservation,
		SelectedCount: f.cart.SelectedCount(),
		TotalAmount:   total,
	}
}
