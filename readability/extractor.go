// Package readability extracts the main content of blog posts using the
// Mozilla Readability algorithm.
package readability

import (
	"strings"

	"github.com/fwojciec/kbharvest"
	"github.com/go-shiori/go-readability"
)

// Compile-time interface verification.
var _ kbharvest.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes a full page and returns its main content.
func (e *Extractor) Extract(rawHTML string) (*kbharvest.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.ENOTFOUND, "no main content: %v", err)
	}

	return &kbharvest.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
