package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbharvest"
)

// Compile-time interface verification.
var _ kbharvest.BlogParser = (*BlogParser)(nil)

// BlogParser parses blog listing and post pages using the CSS selectors of a
// kbharvest.Blog.
type BlogParser struct{}

// NewBlogParser creates a new BlogParser.
func NewBlogParser() *BlogParser {
	return &BlogParser{}
}

// ParseListing returns the post links and the next-page link of a listing page.
// Links are resolved against pageURL, stripped of fragments and deduplicated
// in document order. Non-HTTP links are skipped.
func (p *BlogParser) ParseListing(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Listing, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	listing := &kbharvest.Listing{}
	seen := make(map[string]bool)

	doc.Find(blog.LinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}
		if blog.LinkContains != "" && !strings.Contains(href, blog.LinkContains) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		listing.PostURLs = append(listing.PostURLs, resolved)
	})

	if blog.NextSelector != "" {
		if href, ok := doc.Find(blog.NextSelector).First().Attr("href"); ok {
			listing.NextURL = resolveURL(base, href)
		}
	}

	return listing, nil
}

// ParsePost returns the title and content HTML of a post page. The content is
// the inner HTML of the first element matched by the first content selector
// that matches anything.
func (p *BlogParser) ParsePost(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Post, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	post := &kbharvest.Post{Title: kbharvest.NoTitle}

	if title := doc.Find(blog.TitleSelector).First(); title.Length() > 0 {
		post.Title = strings.TrimSpace(title.Text())
	}

	for _, selector := range blog.ContentSelectors {
		content := doc.Find(selector).First()
		if content.Length() == 0 {
			continue
		}
		inner, err := content.Html()
		if err != nil {
			return nil, kbharvest.Errorf(kbharvest.EINTERNAL, "failed to render content of %s: %v", pageURL, err)
		}
		post.ContentHTML = inner
		post.Matched = true
		break
	}

	return post, nil
}

// resolveURL resolves href against base and strips the fragment.
// Returns empty string for unparsable and non-HTTP links.
func resolveURL(base *url.URL, href string) string {
	if isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
