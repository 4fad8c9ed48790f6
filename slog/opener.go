package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbharvest"
)

// Ensure LoggingOpener implements kbharvest.PageSourceOpener.
var _ kbharvest.PageSourceOpener = (*LoggingOpener)(nil)

// LoggingOpener wraps a PageSourceOpener with logging.
type LoggingOpener struct {
	next   kbharvest.PageSourceOpener
	logger *slog.Logger
}

// NewLoggingOpener creates a new LoggingOpener.
func NewLoggingOpener(next kbharvest.PageSourceOpener, logger *slog.Logger) *LoggingOpener {
	return &LoggingOpener{next: next, logger: logger}
}

// Open delegates to the wrapped opener and logs the page count.
func (o *LoggingOpener) Open(ctx context.Context, path string) (src kbharvest.PageSource, err error) {
	defer func(begin time.Time) {
		pages := 0
		if src != nil {
			pages = src.PageCount()
		}
		o.logger.Info("open book",
			"path", path,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Open(ctx, path)
}

// MarkerLogger returns a MarkerFunc logging every chapter marker found
// while a book is segmented. Pages are reported 1-based.
func MarkerLogger(logger *slog.Logger) kbharvest.MarkerFunc {
	return func(m kbharvest.ChapterMarker) {
		logger.Info("chapter marker",
			"chapter", m.Label(),
			"page", m.PageIndex+1,
			"heading", m.Heading,
		)
	}
}
