// Package rod fetches JavaScript-rendered blog pages with headless Chrome.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/kbharvest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation and rendering of a single page.
const DefaultFetchTimeout = 10 * time.Second

// Compile-time interface verification.
var _ kbharvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. It is
// meant for blogs whose listing or post pages are built client-side.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns EUNAVAILABLE if Chrome cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "launch browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "connect to browser: %v", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to url in a fresh tab, waits for the load event and
// returns the rendered document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return html, nil
}

// Close shuts down the browser and kills its process. Close is safe to call
// multiple times.
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.browser.Close()
		f.launcher.Kill()
	})
	return f.closeErr
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}
