// Package trafilatura extracts the main content of blog posts whose layout
// matches none of the configured content selectors.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/kbharvest"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ kbharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Reader comment sections are left out
// of the extracted content.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes a full page and returns its main content.
func (e *Extractor) Extract(rawHTML string) (*kbharvest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.ENOTFOUND, "no main content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &kbharvest.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
