package adapters

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. Safe to call more than once.
type CancelFunc func()

// SchedulerAdapter is the timer facility supplied by the host. The SDK needs
// exactly two primitives: "invoke this callback approximately every interval"
// and "invoke this callback once after delay". Callbacks may run on any
// goroutine or host thread; the SDK does its own locking.
type SchedulerAdapter interface {
	// Every registers fn to run repeatedly at the given interval until the
	// returned CancelFunc is called.
	Every(interval time.Duration, fn func()) CancelFunc
	// After registers fn to run once after the given delay. The returned
	// CancelFunc stops it if it has not fired yet.
	After(delay time.Duration, fn func()) CancelFunc
}

// TickerScheduler is the default scheduler implementation using time.Ticker
// and time.AfterFunc.
type TickerScheduler struct{}

var _ SchedulerAdapter = (*TickerScheduler)(nil)

// NewTickerScheduler creates a scheduler backed by the Go runtime timers.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (t *TickerScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(stop)
		})
	}
}

func (t *TickerScheduler) After(delay time.Duration, fn func()) CancelFunc {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// ManualScheduler is a SchedulerAdapter for tests: nothing fires on its own,
// callbacks run synchronously when the test calls Tick or FireAfter.
type ManualScheduler struct {
	mu     sync.Mutex
	every  []func()
	afters []func()
}

var _ SchedulerAdapter = (*ManualScheduler)(nil)

// NewManualScheduler creates an empty manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) Every(interval time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.every = append(m.every, fn)
	idx := len(m.every) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.every) {
			m.every[idx] = nil
		}
	}
}

func (m *ManualScheduler) After(delay time.Duration, fn func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.afters = append(m.afters, fn)
	idx := len(m.afters) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.afters) {
			m.afters[idx] = nil
		}
	}
}

// Tick runs every registered periodic callback once, as if one interval
// elapsed.
func (m *ManualScheduler) Tick() {
	for _, fn := range m.snapshot(&m.every) {
		fn()
	}
}

// FireAfter runs and consumes all pending one-shot callbacks.
func (m *ManualScheduler) FireAfter() {
	m.mu.Lock()
	pending := m.afters
	m.afters = nil
	m.mu.Unlock()
	for _, fn := range pending {
		if fn != nil {
			fn()
		}
	}
}

// PendingAfter reports how many one-shot callbacks are armed.
func (m *ManualScheduler) PendingAfter() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, fn := range m.afters {
		if fn != nil {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) snapshot(src *[]func()) []func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]func(), 0, len(*src))
	for _, fn := range *src {
		if fn != nil {
			out = append(out, fn)
		}
	}
	return out
}
