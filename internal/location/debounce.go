package location

import (
	"sync"
	"time"
)

// DefaultDebounceInterval matches the dashboard's search-as-you-type
// coalescing window.
const DefaultDebounceInterval = 300 * time.Millisecond

// Debouncer coalesces rapid calls so only the last one within the
// interval fires. The resolver itself is debounce-agnostic; callers
// issuing a search per keystroke wrap it with one of these.
type Debouncer struct {
	interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer. interval <= 0 falls back to the
// default 300 ms.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval}
}

// Do schedules fn after the debounce interval, cancelling any call
// still pending. fn runs on a timer goroutine.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
