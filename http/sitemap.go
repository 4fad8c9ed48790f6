package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/kbharvest"
)

// maxIndexDepth bounds how deeply nested sitemap indexes are followed.
const maxIndexDepth = 3

// Compile-time interface verification.
var _ kbharvest.SitemapService = (*SitemapService)(nil)

// SitemapService discovers post URLs from a blog's sitemaps. It is used when
// a listing page yields no post links, typically because the listing is
// rendered client-side.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed by the sitemaps of baseURL's host,
// in sitemap order and without duplicates. Sitemaps are located through the
// Sitemap directives of robots.txt, falling back to /sitemap.xml.
//
// When baseURL has a non-root path (e.g. https://quill.co/blog), only URLs
// below that path are returned. A site without sitemaps yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *kbharvest.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "invalid base URL %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	found := []string{}
	seenURLs := make(map[string]bool)
	seenSitemaps := make(map[string]bool)

	for _, sitemapURL := range sitemaps {
		urls, err := s.readSitemap(ctx, sitemapURL, seenSitemaps, 0)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if seenURLs[u] || !underPath(u, prefix) || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			found = append(found, u)
		}
	}

	return found, nil
}

// underPath reports whether rawURL's path lies below prefix, respecting
// segment boundaries: /blog matches /blog/post but not /blogroll.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix+"/")
}

// locateSitemaps reads Sitemap directives from robots.txt, falling back to
// /sitemap.xml when robots.txt is missing or declares none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps extracts the Sitemap directives of a robots.txt file.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if loc := strings.TrimSpace(line[len(directive):]); loc != "" {
			sitemaps = append(sitemaps, loc)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	return sitemaps, nil
}

// readSitemap fetches one sitemap. A urlset yields its page URLs; a
// sitemapindex is followed recursively up to maxIndexDepth.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] || depth > maxIndexDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "parse sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	var urls []string
	for _, child := range locs(root, "sitemap") {
		childURLs, err := s.readSitemap(ctx, child, seen, depth+1)
		if err != nil {
			return nil, err
		}
		urls = append(urls, childURLs...)
	}
	return urls, nil
}

// locs returns the trimmed, non-empty <loc> texts of root's tag children.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// get fetches targetURL and returns the response body.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, targetURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, kbharvest.Errorf(kbharvest.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists reports whether targetURL answers a HEAD request with 200 OK.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, targetURL)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (s *SitemapService) do(ctx context.Context, method, targetURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return s.client.Do(req)
}
