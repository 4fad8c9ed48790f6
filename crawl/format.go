package crawl

import (
	"fmt"

	"github.com/fwojciec/kbharvest"
)

// Stats summarizes the items harvested from one source.
type Stats struct {
	Items int
	Bytes int
	Empty int
}

// Summarize computes Stats over items. Items with empty content are counted
// separately since they usually point at a stale content selector.
func Summarize(items []*kbharvest.Item) Stats {
	var s Stats
	for _, item := range items {
		s.Items++
		s.Bytes += len(item.Content)
		if item.Content == "" {
			s.Empty++
		}
	}
	return s
}

// String formats the stats for progress output.
func (s Stats) String() string {
	out := fmt.Sprintf("%d items, %s", s.Items, FormatBytes(s.Bytes))
	if s.Empty > 0 {
		out += fmt.Sprintf(", %d empty", s.Empty)
	}
	return out
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
