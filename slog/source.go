package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbharvest"
)

// Ensure LoggingSource implements kbharvest.Source.
var _ kbharvest.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source and logs each harvest.
type LoggingSource struct {
	next   kbharvest.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next kbharvest.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Name delegates to the wrapped source.
func (s *LoggingSource) Name() string {
	return s.next.Name()
}

// Harvest delegates to the wrapped source. Failures are logged at warn
// level because the harvest continues with the next source.
func (s *LoggingSource) Harvest(ctx context.Context) (items []*kbharvest.Item, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "harvest",
			"source", s.next.Name(),
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Harvest(ctx)
}
