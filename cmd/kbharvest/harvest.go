package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/crawl"
)

// Run harvests every source in order. A failing source is reported and
// skipped; the store is committed with whatever was collected.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	var items []*kbharvest.Item

	for i, src := range deps.Sources {
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", i+1, len(deps.Sources), src.Name())

		got, err := src.Harvest(deps.Ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if deps.Store != nil {
					_ = deps.Store.Abort()
				}
				return err
			}
			fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", src.Name(), errorText(err))
			continue
		}

		fmt.Fprintf(deps.Stdout, "  %s\n", crawl.Summarize(got))
		items = append(items, got...)
	}

	if c.Preview {
		for _, item := range items {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", item.Title, item.SourceURL)
		}
		return nil
	}

	for _, item := range items {
		if err := deps.Store.Save(deps.Ctx, item); err != nil {
			_ = deps.Store.Abort()
			fmt.Fprintf(deps.Stderr, "error saving %s: %s\n", item.SourceURL, errorText(err))
			return err
		}
	}
	if err := deps.Store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	deps.Logger.Info("harvest complete", "items", len(items))
	fmt.Fprintf(deps.Stdout, " Done! Extracted %d items.\n", len(items))
	return nil
}

// errorText prefers the message of an application error.
func errorText(err error) string {
	if kbharvest.ErrorCode(err) != kbharvest.EINTERNAL {
		return kbharvest.ErrorMessage(err)
	}
	return err.Error()
}

// ProgressReporter prints blog progress on stdout and reports skipped posts
// on stderr and in the log. The in-place progress line is cleared before
// anything else is written to the terminal.
func ProgressReporter(stdout, stderr io.Writer, logger *slog.Logger) crawl.ProgressFunc {
	clearLine := func() { fmt.Fprintf(stdout, "\r%80s\r", "") }
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(stdout, "  found %d posts\n", e.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(stdout, "\r  [%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.URL, 50))
		case crawl.ProgressFailed:
			logger.Error("scrape post", "url", e.URL, "err", e.Error)
			clearLine()
			fmt.Fprintf(stderr, "skip %s: %s\n", e.URL, errorText(e.Error))
		case crawl.ProgressFinished:
			clearLine()
		}
	}
}

// Compile-time interface verification.
var _ kbharvest.ItemStore = (multiStore)(nil)

// multiStore fans items out to several stores.
type multiStore []kbharvest.ItemStore

func (m multiStore) Save(ctx context.Context, item *kbharvest.Item) error {
	for _, s := range m {
		if err := s.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits every store, even when an earlier one fails.
func (m multiStore) Commit() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Commit())
	}
	return errors.Join(errs...)
}

func (m multiStore) Abort() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Abort())
	}
	return errors.Join(errs...)
}
