package usecase

import (
	"sync"
	"time"
)

const (
	// DefaultRateLimit is the number of messages a sender may send per window
	DefaultRateLimit = 10
	// DefaultRateWindow is the rate window length
	DefaultRateWindow = 10 * time.Second
)

// Admission is the result of a rate limit check
type Admission struct {
	Allowed bool
	Count   int // messages admitted in the current window, including this one
	ResetAt time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a per-sender fixed-window message budget
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	windows map[string]*rateWindow
}

// NewRateLimiter creates a limiter allowing limit messages per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*rateWindow),
	}
}

// Admit checks and consumes the sender's budget at now.
// A window whose resetAt is reached (inclusive) starts over.
func (r *RateLimiter) Admit(sender string, now time.Time) Admission {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[sender]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{count: 0, resetAt: now.Add(r.window)}
		r.windows[sender] = w
	}

	if w.count >= r.limit {
		return Admission{Allowed: false, Count: w.count, ResetAt: w.resetAt}
	}

	w.count++
	return Admission{Allowed: true, Count: w.count, ResetAt: w.resetAt}
}
