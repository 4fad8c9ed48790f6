package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbharvest"
)

// Ensure LoggingSitemapService implements kbharvest.SitemapService.
var _ kbharvest.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   kbharvest.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next kbharvest.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs how many post
// URLs the sitemap fallback produced.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbharvest.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap fallback",
			"url", baseURL,
			"filtered", filter != nil,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
