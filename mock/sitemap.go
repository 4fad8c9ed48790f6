package mock

import (
	"context"

	"github.com/fwojciec/kbharvest"
)

var _ kbharvest.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of kbharvest.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *kbharvest.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbharvest.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
