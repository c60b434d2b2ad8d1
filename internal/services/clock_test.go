package services

import (
	"sync"
	"testing"
	"time"
)

// manualClock is a Clock whose tickers fire only when the test calls Tick.
type manualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
	created chan struct{}
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now, created: make(chan struct{}, 16)}
}

func (clock *manualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *manualClock) NewTicker(time.Duration) Ticker {
	clock.mu.Lock()
	ticker := &manualTicker{ch: make(chan time.Time, 1)}
	clock.tickers = append(clock.tickers, ticker)
	clock.mu.Unlock()

	clock.created <- struct{}{}
	return ticker
}

func (clock *manualClock) Advance(step time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(step)
	now := clock.now
	tickers := append([]*manualTicker(nil), clock.tickers...)
	clock.mu.Unlock()

	for _, ticker := range tickers {
		ticker.fire(now)
	}
}

func (clock *manualClock) waitForTicker(timeout time.Duration) bool {
	select {
	case <-clock.created:
		return true
	case <-time.After(timeout):
		return false
	}
}

type manualTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

func (ticker *manualTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *manualTicker) Stop() {
	ticker.mu.Lock()
	ticker.stopped = true
	ticker.mu.Unlock()
}

func (ticker *manualTicker) fire(now time.Time) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if ticker.stopped {
		return
	}
	select {
	case ticker.ch <- now:
	default:
	}
}

func TestSystemClockTicks(t *testing.T) {
	ticker := SystemClock{}.NewTicker(time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("expected system ticker to fire")
	}
}
