// Package bloom remembers visited listing pages with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter records page URLs so that a pagination chain that loops back on
// itself is detected. URLs are normalized before they are recorded: the
// scheme and host are lowercased, the fragment is dropped and a trailing
// slash is ignored.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records rawURL and reports whether it was seen for the first time.
// A false positive makes Visit report a new URL as already seen.
func (f *Filter) Visit(rawURL string) bool {
	return !f.f.TestAndAddString(normalize(rawURL))
}

// Seen reports whether rawURL might have been visited.
func (f *Filter) Seen(rawURL string) bool {
	return f.f.TestString(normalize(rawURL))
}

// EstimatedCount returns the approximate number of visited URLs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func normalize(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
