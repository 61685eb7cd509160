package ratelimit

import (
	"sync"
	"time"
)

// FixedWindow counts requests per key inside discrete windows. The counter
// resets when a new window starts; there is no smoothing across boundaries.
type FixedWindow struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	counts map[string]*windowCount
	now    func() time.Time
}

type windowCount struct {
	windowStart time.Time
	count       int
}

func NewFixedWindow(window time.Duration, max int) *FixedWindow {
	if window <= 0 {
		window = time.Minute
	}
	if max < 1 {
		max = 1
	}

	return &FixedWindow{
		window: window,
		max:    max,
		counts: make(map[string]*windowCount),
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits in the
// current window.
func (l *FixedWindow) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	wc, ok := l.counts[key]
	if !ok || now.Sub(wc.windowStart) >= l.window {
		l.counts[key] = &windowCount{windowStart: now, count: 1}
		l.sweepLocked(now)
		return true
	}

	if wc.count >= l.max {
		return false
	}
	wc.count++
	return true
}

// sweepLocked drops stale windows so abandoned keys do not accumulate.
func (l *FixedWindow) sweepLocked(now time.Time) {
	if len(l.counts) < 1024 {
		return
	}
	for key, wc := range l.counts {
		if now.Sub(wc.windowStart) >= l.window {
			delete(l.counts, key)
		}
	}
}
