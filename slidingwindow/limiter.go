// Package slidingwindow implements a per-user sliding-window rate
// limiter. Each user carries a history of recent event timestamps;
// an event is allowed while fewer than the configured maximum fall
// inside the trailing window.
package slidingwindow

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrInvalidWindow is returned by NewLimiter when the window is not positive.
	ErrInvalidWindow = errors.New("window must be positive")
	// ErrInvalidMaxRequests is returned by NewLimiter when maxRequests is not positive.
	ErrInvalidMaxRequests = errors.New("max requests must be positive")
)

// Limiter is a thread-safe sliding-window rate limiter keyed by user ID.
type Limiter struct {
	window      time.Duration
	maxRequests int
	now         func() time.Time

	mu      sync.Mutex
	history map[string][]time.Time
}

// Option configures Limiter constructor behavior.
type Option func(*Limiter)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLimiter constructs a Limiter allowing maxRequests events per user
// within the trailing window.
func NewLimiter(window time.Duration, maxRequests int, opts ...Option) (*Limiter, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if maxRequests < 1 {
		return nil, ErrInvalidMaxRequests
	}

	l := &Limiter{
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
		history:     make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow records an event for userID if the user is under the limit,
// returning whether the event was admitted.
func (l *Limiter) Allow(userID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(userID, now)
	if len(l.history[userID]) >= l.maxRequests {
		return false
	}
	l.history[userID] = append(l.history[userID], now)
	return true
}

// CanSend reports whether an event for userID would currently be
// admitted, without recording anything.
func (l *Limiter) CanSend(userID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(userID, now)
	return len(l.history[userID]) < l.maxRequests
}

// TimeUntilAllowed returns how long userID has to wait before the next
// event is admitted; zero when an event is admissible now. The wait is
// the time left until the oldest in-window event leaves the window.
func (l *Limiter) TimeUntilAllowed(userID string) time.Duration {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(userID, now)
	events := l.history[userID]
	if len(events) < l.maxRequests {
		return 0
	}
	wait := events[0].Add(l.window).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Users returns the number of users with in-window history.
func (l *Limiter) Users() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// prune drops timestamps at or before now-window and deletes users with
// no remaining events. Has to be called with lock!
func (l *Limiter) prune(userID string, now time.Time) {
	events, ok := l.history[userID]
	if !ok {
		return
	}

	windowStart := now.Add(-l.window)
	i := 0
	for i < len(events) && !events[i].After(windowStart) {
		i++
	}
	if i == len(events) {
		delete(l.history, userID)
		return
	}
	if i > 0 {
		l.history[userID] = append(events[:0:0], events[i:]...)
	}
}
