package mock

import "github.com/fwojciec/kbharvest"

var _ kbharvest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of kbharvest.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*kbharvest.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*kbharvest.ExtractResult, error) {
	return e.ExtractFn(html)
}
