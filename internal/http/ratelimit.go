package http

import (
	"sync"
	"sync/atomic"
	"time"
)

// Write-path budget per client. Reads bypass the limiter entirely, so the
// window only has to absorb bursts of mutations.
const (
	writeBudget      = 60
	writeWindow      = time.Minute
	limiterSweepTick = 5 * time.Minute
	limiterStaleAge  = 10 * time.Minute
)

// rateLimiter meters mutating requests per client IP over a fixed window.
type rateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*writeTally
	rejected atomic.Int64

	sweepDone chan struct{}
	stopOnce  sync.Once
}

// writeTally counts mutations since the window opened.
type writeTally struct {
	openedAt time.Time
	writes   int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		windows:   make(map[string]*writeTally),
		sweepDone: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// allow consumes one write slot for the client. A lapsed window is replaced
// rather than extended, so a client that backs off recovers immediately.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	tally, ok := rl.windows[clientIP]
	if !ok || now.Sub(tally.openedAt) > writeWindow {
		rl.windows[clientIP] = &writeTally{openedAt: now, writes: 1}
		return true
	}

	tally.writes++
	if tally.writes > writeBudget {
		rl.rejected.Add(1)
		return false
	}
	return true
}

// rejectedCount reports how many writes the limiter has turned away.
func (rl *rateLimiter) rejectedCount() int64 {
	return rl.rejected.Load()
}

func (rl *rateLimiter) sweepLoop() {
	ticker := time.NewTicker(limiterSweepTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropStaleWindows()
		case <-rl.sweepDone:
			return
		}
	}
}

// dropStaleWindows forgets clients that have been quiet long enough that
// their next write would open a fresh window anyway.
func (rl *rateLimiter) dropStaleWindows() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-limiterStaleAge)
	for ip, tally := range rl.windows {
		if tally.openedAt.Before(cutoff) {
			delete(rl.windows, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.sweepDone) })
}
