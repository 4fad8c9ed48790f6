package mock

import (
	"context"

	"github.com/fwojciec/kbharvest"
)

var (
	_ kbharvest.Fetcher       = (*Fetcher)(nil)
	_ kbharvest.DomainLimiter = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of kbharvest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// DomainLimiter is a mock implementation of kbharvest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
