// Package crawl scrapes blogs: it walks listing pages, fetches posts and
// turns them into knowledge-base items.
package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/kbharvest"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var _ kbharvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per host using token buckets, so that listing
// and post fetches against one blog stay polite.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain, without bursting. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request to domain is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
