package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/mock"
	kbslog "github.com/fwojciec/kbharvest/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingOpener_Open(t *testing.T) {
	t.Parallel()

	t.Run("logs path and page count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		pages, _ := mock.NewPageSource("one", "two", "three")
		inner := &mock.PageSourceOpener{
			OpenFn: func(ctx context.Context, path string) (kbharvest.PageSource, error) {
				return pages, nil
			},
		}

		src, err := kbslog.NewLoggingOpener(inner, logger).Open(context.Background(), "book.pdf")

		require.NoError(t, err)
		assert.Equal(t, 3, src.PageCount())
		output := buf.String()
		assert.Contains(t, output, `msg="open book"`)
		assert.Contains(t, output, "path=book.pdf")
		assert.Contains(t, output, "pages=3")
	})

	t.Run("logs the error without pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageSourceOpener{
			OpenFn: func(ctx context.Context, path string) (kbharvest.PageSource, error) {
				return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "cannot read %s", path)
			},
		}

		_, err := kbslog.NewLoggingOpener(inner, logger).Open(context.Background(), "missing.pdf")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "pages=0")
		assert.Contains(t, output, "cannot read missing.pdf")
	})
}

func TestMarkerLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	segmenter := &kbharvest.Segmenter{OnMarker: kbslog.MarkerLogger(logger)}

	segmenter.SegmentPages([]string{"Preface", "Chapter 2 Arrays"})

	output := buf.String()
	assert.Contains(t, output, `msg="chapter marker"`)
	assert.Contains(t, output, "chapter=2")
	assert.Contains(t, output, "page=2")
	assert.Contains(t, output, `heading="Chapter 2 Arrays"`)
}
