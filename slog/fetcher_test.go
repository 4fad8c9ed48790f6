package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/kbharvest/mock"
	kbslog "github.com/fwojciec/kbharvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs url, size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<h1>Two Pointers</h1>", nil
			},
		}

		fetcher := kbslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://nilmamano.com/blog/two-pointers")

		require.NoError(t, err)
		assert.Equal(t, "<h1>Two Pointers</h1>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://nilmamano.com/blog/two-pointers")
		assert.Contains(t, output, "bytes=21")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs the error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		fetcher := kbslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://quill.co/blog")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="connection reset"`)
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		err := kbslog.NewLoggingFetcher(inner, logger).Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
