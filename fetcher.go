package kbharvest

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered blogs.
type Fetcher interface {
	// Fetch retrieves the page and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to the domain is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
