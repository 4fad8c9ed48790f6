package mock

import (
	"context"

	"github.com/fwojciec/kbharvest"
)

// Compile-time interface verification.
var (
	_ kbharvest.PageSource       = (*PageSource)(nil)
	_ kbharvest.PageSourceOpener = (*PageSourceOpener)(nil)
)

// PageSource is a mock implementation of kbharvest.PageSource.
type PageSource struct {
	PageCountFn func() int
	PageTextFn  func(index int) string
	CloseFn     func() error
}

func (s *PageSource) PageCount() int {
	return s.PageCountFn()
}

func (s *PageSource) PageText(index int) string {
	return s.PageTextFn(index)
}

func (s *PageSource) Close() error {
	return s.CloseFn()
}

// NewPageSource returns a PageSource serving pages from memory.
// Closed is set to true once Close has been called.
func NewPageSource(pages ...string) (*PageSource, *bool) {
	closed := false
	return &PageSource{
		PageCountFn: func() int { return len(pages) },
		PageTextFn:  func(index int) string { return pages[index] },
		CloseFn: func() error {
			closed = true
			return nil
		},
	}, &closed
}

// PageSourceOpener is a mock implementation of kbharvest.PageSourceOpener.
type PageSourceOpener struct {
	OpenFn func(ctx context.Context, path string) (kbharvest.PageSource, error)
}

func (o *PageSourceOpener) Open(ctx context.Context, path string) (kbharvest.PageSource, error) {
	return o.OpenFn(ctx, path)
}
