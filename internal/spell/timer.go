package spell

import (
	"sync"
	"time"
)

// Timer is a cancellable, reschedulable deferred callback. At most one
// callback is pending at a time: scheduling again before the pending
// one fires replaces it, restarting the delay.
type Timer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arranges for fn to run after delay, cancelling any pending
// callback first.
func (t *Timer) Schedule(delay time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(delay, fn)
}

// Cancel stops any pending callback. Safe to call when nothing is
// scheduled.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
