package kbharvest

import (
	"context"
	"regexp"
)

// SitemapService discovers page URLs from a site's sitemap.
type SitemapService interface {
	// DiscoverURLs returns the URLs listed by the sitemaps of baseURL's host,
	// restricted to baseURL's path and to filter. A nil filter keeps every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter keeps or drops URLs by pattern.
type URLFilter struct {
	// Include patterns. When set, a URL must match at least one of them.
	Include []*regexp.Regexp

	// Exclude patterns, applied after Include.
	Exclude []*regexp.Regexp
}

// ContainsFilter returns a filter keeping URLs that contain substr.
// An empty substr returns nil, which keeps everything.
func ContainsFilter(substr string) *URLFilter {
	if substr == "" {
		return nil
	}
	return &URLFilter{Include: []*regexp.Regexp{regexp.MustCompile(regexp.QuoteMeta(substr))}}
}

// Match reports whether url passes the filter. A nil filter matches everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}
	return true
}
