// Package pdf reads the text layer of PDF files.
package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/fwojciec/kbharvest"
	"github.com/ledongthuc/pdf"
)

// Compile-time interface verification.
var (
	_ kbharvest.PageSourceOpener = (*Opener)(nil)
	_ kbharvest.PageSource       = (*Document)(nil)
)

// Opener opens PDF files from the local filesystem.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the PDF at path. Missing, unreadable and malformed files are
// reported as EUNAVAILABLE.
func (o *Opener) Open(ctx context.Context, path string) (_ kbharvest.PageSource, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "open pdf %s: %v", path, err)
	}

	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			_ = f.Close()
			err = kbharvest.Errorf(kbharvest.EUNAVAILABLE, "open pdf %s: %v", path, r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "open pdf %s: %v", path, err)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "open pdf %s: %v", path, err)
	}
	return &Document{file: f, reader: r}, nil
}

// Document is an open PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of the page at the zero-based index.
// Pages without a text layer, and pages whose text cannot be decoded,
// yield an empty string.
func (d *Document) PageText(index int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := d.reader.Page(index + 1)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// Close closes the underlying file.
func (d *Document) Close() error {
	if err := d.file.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}
