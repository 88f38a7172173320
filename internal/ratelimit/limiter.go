// Package ratelimit caps requests per client per endpoint class using fixed,
// non-overlapping time windows. The counter resets at the window boundary, so
// a client can burst up to twice the limit across a boundary; that is the
// accepted trade-off for not tracking per-request timestamps.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"detailing-api/internal/pkg/clock"
)

// Class partitions counters by endpoint so a burst of contact submissions
// cannot exhaust a client's booking budget.
type Class string

const (
	ClassBooking Class = "booking"
	ClassContact Class = "contact"
	ClassEmail   Class = "email"
)

// UnknownClient is the shared bucket for requests whose client identity could
// not be determined. The limiter fails open otherwise: it never returns an
// error to the request path.
const UnknownClient = "unknown"

type Rule struct {
	Max    int
	Window time.Duration
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, clientKey string, class Class) Decision
}

// memoryLimiter is the process-local backend. Correct only when all requests
// from a client land on a single instance; multi-instance deployments use the
// Redis backend instead.
type memoryLimiter struct {
	mu      sync.Mutex
	rules   map[Class]Rule
	windows map[string]*window
	clock   clock.Clock
}

type window struct {
	start time.Time
	count int
}

// pruneThreshold bounds the window map: once it grows past this many entries,
// expired windows are dropped on the next Allow call.
const pruneThreshold = 1000

func NewMemoryLimiter(rules map[Class]Rule, clk clock.Clock) Limiter {
	return &memoryLimiter{
		rules:   rules,
		windows: make(map[string]*window),
		clock:   clk,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, clientKey string, class Class) Decision {
	rule, ok := l.rules[class]
	if !ok || rule.Max <= 0 {
		return Decision{Allowed: true}
	}
	if clientKey == "" {
		clientKey = UnknownClient
	}
	key := string(class) + ":" + clientKey
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.windows) > pruneThreshold {
		l.prune(now)
	}

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= rule.Window {
		l.windows[key] = &window{start: now, count: 1}
		return Decision{Allowed: true}
	}

	if w.count >= rule.Max {
		return Decision{
			Allowed:    false,
			RetryAfter: w.start.Add(rule.Window).Sub(now),
		}
	}

	w.count++
	return Decision{Allowed: true}
}

func (l *memoryLimiter) prune(now time.Time) {
	longest := time.Duration(0)
	for _, r := range l.rules {
		if r.Window > longest {
			longest = r.Window
		}
	}
	for k, w := range l.windows {
		if now.Sub(w.start) >= longest {
			delete(l.windows, k)
		}
	}
}
