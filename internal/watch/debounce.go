package watch

import (
	"sync"
	"time"
)

// debouncer coalesces triggers into one signal per quiet period. The
// channel holds at most one pending signal.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	out   chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, out: make(chan struct{}, 1)}
}

func (d *debouncer) C() <-chan struct{} {
	return d.out
}

// Trigger restarts the quiet period.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	select {
	case d.out <- struct{}{}:
	default:
	}
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
