package kbharvest

// Converter converts an HTML fragment to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// An empty fragment converts to an empty string.
	Convert(html string) (string, error)
}
