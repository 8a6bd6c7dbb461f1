package ratelimiter

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PromptLimiter applies a token bucket per signing operation so callers cannot
// flood the provider's approval prompt. A nil *PromptLimiter allows everything.
type PromptLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu          sync.Mutex
	byOperation map[string]*rate.Limiter
}

// New returns nil when rps or burst is not positive, which disables limiting.
func New(rps float64, burst int) *PromptLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &PromptLimiter{
		limit:       rate.Limit(rps),
		burst:       burst,
		now:         time.Now,
		byOperation: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether one prompt for operation may be shown now.
func (l *PromptLimiter) Allow(operation string) bool {
	if l == nil {
		return true
	}
	operation = strings.TrimSpace(operation)
	if operation == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.byOperation[operation]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.byOperation[operation] = limiter
	}
	return limiter.AllowN(l.now(), 1)
}
