package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/bloom"
)

// Compile-time interface verification.
var _ kbharvest.Source = (*BlogScraper)(nil)

// BlogScraper harvests the posts of one blog. Listing pages are walked
// first, then every post is fetched and converted in listing order.
type BlogScraper struct {
	Blog      *kbharvest.Blog
	Fetcher   kbharvest.Fetcher
	Parser    kbharvest.BlogParser
	Converter kbharvest.Converter

	// Fallback, if set, extracts the main content of posts that match none
	// of the blog's content selectors.
	Fallback kbharvest.Extractor

	// Sitemaps, if set, supplies post URLs when the listing yields none.
	Sitemaps kbharvest.SitemapService

	// RateLimiter, if set, paces requests per host.
	RateLimiter kbharvest.DomainLimiter

	// MaxListingPages bounds pagination. Values <= 0 use
	// kbharvest.DefaultMaxListingPages.
	MaxListingPages int

	// Progress, if set, receives an event per post.
	Progress ProgressFunc
}

// ProgressEvent reports progress while a blog is scraped.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// Name identifies the blog in logs.
func (s *BlogScraper) Name() string {
	return "blog " + s.Blog.DisplayName()
}

// Harvest scrapes every post of the blog. A post that fails is reported
// through Progress and skipped; a listing that fails fails the whole blog.
func (s *BlogScraper) Harvest(ctx context.Context) ([]*kbharvest.Item, error) {
	urls, err := s.PostURLs(ctx)
	if err != nil {
		return nil, err
	}

	total := len(urls)
	s.report(ProgressEvent{Type: ProgressStarted, Total: total})

	items := make([]*kbharvest.Item, 0, total)
	for i, postURL := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item, err := s.ScrapePost(ctx, postURL)
		if err != nil {
			s.report(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, URL: postURL, Error: err})
			continue
		}
		items = append(items, item)
		s.report(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, URL: postURL})
	}

	s.report(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return items, nil
}

// PostURLs walks the listing pages and returns the post URLs in listing
// order without duplicates. Pagination stops when there is no next page,
// when a page repeats, or after MaxListingPages pages.
func (s *BlogScraper) PostURLs(ctx context.Context) ([]string, error) {
	maxPages := s.MaxListingPages
	if maxPages <= 0 {
		maxPages = kbharvest.DefaultMaxListingPages
	}

	visited := bloom.NewFilter(uint(maxPages), 0.0001)
	seen := make(map[string]bool)
	var urls []string

	pageURL := s.Blog.ListingURL
	for range maxPages {
		if pageURL == "" || !visited.Visit(pageURL) {
			break
		}

		html, err := s.fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch listing %s: %w", pageURL, err)
		}
		listing, err := s.Parser.ParseListing(html, pageURL, s.Blog)
		if err != nil {
			return nil, fmt.Errorf("parse listing %s: %w", pageURL, err)
		}

		for _, u := range listing.PostURLs {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
		pageURL = listing.NextURL
	}

	if len(urls) == 0 && s.Sitemaps != nil {
		found, err := s.Sitemaps.DiscoverURLs(ctx, s.Blog.ListingURL, kbharvest.ContainsFilter(s.Blog.LinkContains))
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
		urls = found
	}

	return urls, nil
}

// ScrapePost fetches one post and converts it to a blog item. A post whose
// content matches no selector falls back to the Fallback extractor, or gets
// empty content when there is none.
func (s *BlogScraper) ScrapePost(ctx context.Context, postURL string) (*kbharvest.Item, error) {
	html, err := s.fetch(ctx, postURL)
	if err != nil {
		return nil, err
	}

	post, err := s.Parser.ParsePost(html, postURL, s.Blog)
	if err != nil {
		return nil, fmt.Errorf("parse post %s: %w", postURL, err)
	}

	title, contentHTML := post.Title, post.ContentHTML
	if !post.Matched && s.Fallback != nil {
		// An extraction failure leaves the content empty.
		if res, err := s.Fallback.Extract(html); err == nil {
			contentHTML = res.ContentHTML
			if title == kbharvest.NoTitle && res.Title != "" {
				title = res.Title
			}
		}
	}

	content, err := s.Converter.Convert(contentHTML)
	if err != nil {
		return nil, fmt.Errorf("convert post %s: %w", postURL, err)
	}

	return kbharvest.NewItem(title, content, kbharvest.ContentTypeBlog, postURL, s.Blog.Author), nil
}

func (s *BlogScraper) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.RateLimiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
	}
	return s.Fetcher.Fetch(ctx, rawURL)
}

func (s *BlogScraper) report(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}
