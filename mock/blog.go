package mock

import "github.com/fwojciec/kbharvest"

var _ kbharvest.BlogParser = (*BlogParser)(nil)

// BlogParser is a mock implementation of kbharvest.BlogParser.
type BlogParser struct {
	ParseListingFn func(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Listing, error)
	ParsePostFn    func(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Post, error)
}

func (p *BlogParser) ParseListing(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Listing, error) {
	return p.ParseListingFn(html, pageURL, blog)
}

func (p *BlogParser) ParsePost(html string, pageURL string, blog *kbharvest.Blog) (*kbharvest.Post, error) {
	return p.ParsePostFn(html, pageURL, blog)
}
