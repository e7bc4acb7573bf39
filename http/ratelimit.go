package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// domainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so fetches to one slow or throttled
// site never delay fetches to other sites.
type domainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// newDomainLimiter creates a domainLimiter with the given requests per
// second limit. Each domain gets a burst of 1 (no bursting allowed).
func newDomainLimiter(rps float64) *domainLimiter {
	return &domainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *domainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
