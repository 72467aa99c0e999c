package checkout

import (
	"log"
	"sync"
	"time"

	"raffle-marketplace-frontend/internal/models"
	"raffle-marketplace-frontend/internal/services"
)

const (
	// defaultExpiredRetention is how long an expired flow stays resident
	// so the next request can observe the expired state before the entry
	// is dropped on its own.
	defaultExpiredRetention = 10 * time.Minute

	// defaultFlowTTL bounds the total lifetime of any registry entry.
	// Reservation windows are minutes; a flow this old is abandoned.
	defaultFlowTTL = time.Hour
)

// ManagerConfig assembles the shared collaborators every flow gets
type ManagerConfig struct {
	Reservations services.ReservationService
	Payments     services.PaymentService
	ReturnURL    string
	CancelURL    string

	// OnExpired receives the cart id of a flow that expired, after its
	// cart fields were cleared; wired to out-of-band cart-store cleanup.
	OnExpired func(cartID string, cart *models.CartState)

	// TimerInterval overrides the countdown cadence for every flow
	TimerInterval time.Duration

	// ExpiredRetention and FlowTTL override the registry's cleanup
	// windows; Clock overrides time.Now. Tests use them.
	ExpiredRetention time.Duration
	FlowTTL          time.Duration
	Clock            func() time.Time
}

type flowEntry struct {
	flow    *Flow
	created time.Time
}

// Manager keys live checkout flows by cart id so the countdown survives
// between requests. A flow exists from the moment checkout is entered
// until it completes, expires, or is abandoned; expired entries are
// retained briefly for the next request to observe, then dropped, and
// entries older than the TTL are pruned so the registry never grows
// without bound.
type Manager struct {
	mu    sync.Mutex
	flows map[string]flowEntry
	cfg   ManagerConfig
	now   func() time.Time
}

// NewManager creates an empty flow registry
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.ExpiredRetention <= 0 {
		cfg.ExpiredRetention = defaultExpiredRetention
	}
	if cfg.FlowTTL <= 0 {
		cfg.FlowTTL = defaultFlowTTL
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Manager{
		flows: make(map[string]flowEntry),
		cfg:   cfg,
		now:   now,
	}
}

// Get returns the live flow for a cart id, if any
func (m *Manager) Get(cartID string) (*Flow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.flows[cartID]
	return e.flow, ok
}

// Begin returns the live flow for the cart id, creating one when absent.
// Creation enforces the checkout guards; guard violations propagate so the
// handler can redirect away.
func (m *Manager) Begin(cartID string, cart *models.CartState, user *models.User, unitPrice int) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	if e, ok := m.flows[cartID]; ok {
		return e.flow, nil
	}

	var f *Flow
	f, err := New(Config{
		Cart:          cart,
		User:          user,
		UnitPrice:     unitPrice,
		Reservations:  m.cfg.Reservations,
		Payments:      m.cfg.Payments,
		ReturnURL:     m.cfg.ReturnURL,
		CancelURL:     m.cfg.CancelURL,
		TimerInterval: m.cfg.TimerInterval,
		Clock:         m.cfg.Clock,
		OnExpired: func(c *models.CartState) {
			log.Printf("checkout: reservation expired for cart %s", cartID)
			if m.cfg.OnExpired != nil {
				m.cfg.OnExpired(cartID, c)
			}
			// Drop the entry on its own after the retention window in
			// case no request ever comes back to observe the expiry
			time.AfterFunc(m.cfg.ExpiredRetention, func() {
				m.removeFlow(cartID, f)
			})
		},
	})
	if err != nil {
		return nil, err
	}

	m.flows[cartID] = flowEntry{flow: f, created: m.now()}
	return f, nil
}

// Remove tears down and forgets the flow for a cart id. Safe when no flow
// exists.
func (m *Manager) Remove(cartID string) {
	m.mu.Lock()
	e, ok := m.flows[cartID]
	delete(m.flows, cartID)
	m.mu.Unlock()

	if ok {
		e.flow.Close()
	}
}

// removeFlow forgets the entry only while it still holds the given flow;
// a flow the same visitor started afterwards is left alone.
func (m *Manager) removeFlow(cartID string, f *Flow) {
	m.mu.Lock()
	e, ok := m.flows[cartID]
	if ok && e.flow == f {
		delete(m.flows, cartID)
	} else {
		ok = false
	}
	m.mu.Unlock()

	if ok {
		f.Close()
	}
}

// pruneLocked drops entries older than the TTL. Callers hold m.mu.
func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.cfg.FlowTTL)
	for id, e := range m.flows {
		if e.created.Before(cutoff) {
			e.flow.Close()
			delete(m.flows, id)
		}
	}
}
