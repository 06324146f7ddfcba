package license

import (
	"sync"

	"golang.org/x/time/rate"
)

// AttemptGuard throttles repeated validation attempts per namespace. A
// namespace that hammers the validator (for example while brute-forcing key
// material) gets its attempts recorded as Invalid without the cipher ever
// running.
type AttemptGuard struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewAttemptGuard allows perMin validations per minute per namespace with
// the given burst.
func NewAttemptGuard(perMin float64, burst int) *AttemptGuard {
	return &AttemptGuard{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perMin / 60.0),
		burst:    burst,
	}
}

// Allow reports whether another validation attempt is permitted for the
// namespace right now.
func (g *AttemptGuard) Allow(namespace string) bool {
	g.mu.Lock()
	limiter, ok := g.limiters[namespace]
	if !ok {
		limiter = rate.NewLimiter(g.limit, g.burst)
		g.limiters[namespace] = limiter
	}
	g.mu.Unlock()

	return limiter.Allow()
}
