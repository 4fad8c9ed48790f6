package mock

import "github.com/fwojciec/kbharvest"

var _ kbharvest.Converter = (*Converter)(nil)

// Converter is a mock implementation of kbharvest.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
