// Package countdown provides a cancellable countdown against an absolute
// expiry instant. The timer recomputes the remaining duration on a fixed
// interval, reports it through a tick callback, and fires an expiry
// callback exactly once per activation.
package countdown

import (
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the recomputation period between ticks
const DefaultInterval = time.Second

// urgentThreshold is the remaining duration below which the countdown is
// presented as urgent
const urgentThreshold = time.Minute

// Remaining is a clamped remaining duration with display helpers
type Remaining time.Duration

// Duration returns the remaining time as a time.Duration
func (r Remaining) Duration() time.Duration {
	return time.Duration(r)
}

// Minutes returns the whole minutes left
func (r Remaining) Minutes() int {
	return int(time.Duration(r) / time.Minute)
}

// Seconds returns the seconds left within the current minute
func (r Remaining) Seconds() int {
	return int(time.Duration(r)/time.Second) % 60
}

// Display formats the remaining time as zero-padded MM:SS
func (r Remaining) Display() string {
	return fmt.Sprintf("%02d:%02d", r.Minutes(), r.Seconds())
}

// Urgent reports whether less than one minute remains. Presentation only.
func (r Remaining) Urgent() bool {
	return time.Duration(r) < urgentThreshold
}

// Timer runs the countdown. A Timer may be started repeatedly; each Start
// replaces any previous run, so a new expiry instant never races a stale
// one. The zero value is not usable; construct with New.
type Timer struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	stop chan struct{}
}

// Option configures a Timer
type Option func(*Timer)

// WithInterval overrides the recomputation interval. Tests use a short
// interval so countdown behavior can be observed without real waits.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a stopped timer
func New(opts ...Option) *Timer {
	t := &Timer{
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins counting down to the given expiry instant. The remaining
// duration is computed immediately and then once per interval; each
// computation is reported through onTick with the value clamped to zero.
// When the expiry instant has passed, onExpire fires exactly once and the
// run ends. An expiry already in the past yields one zero tick and the
// expiry callback right away. Any previous run is stopped first.
func (t *Timer) Start(expiry time.Time, onTick func(Remaining), onExpire func()) {
	t.mu.Lock()
	t.stopLocked()
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.run(expiry, onTick, onExpire, stop)
}

// Stop cancels the current run. No callback fires after Stop returns the
// run's stop channel closed. Stop is idempotent and safe on a timer that
// was never started.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Active reports whether a run is currently counting down
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Timer) stopLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) run(expiry time.Time, onTick func(Remaining), onExpire func(), stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		remaining := expiry.Sub(t.now())
		if remaining < 0 {
			remaining = 0
		}

		select {
		case <-stop:
			return
		default:
		}

		if onTick != nil {
			onTick(Remaining(remaining))
		}

		if remaining == 0 {
			if t.finish(stop) && onExpire != nil {
				onExpire()
			}
			return
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// finish claims the run's expiry. It returns false when Stop or a restart
// already cancelled this run, so a stale run can never fire the expiry
// callback. On success the timer is marked inactive.
func (t *Timer) finish(stop chan struct{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != stop {
		return false
	}
	t.stop = nil
	return true
}
