package kbharvest

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate removed.
	ContentHTML string
}

// Extractor finds the main content of an arbitrary HTML page.
// Blog scrapers use it when none of a blog's content selectors match.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
