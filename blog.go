package kbharvest

// DefaultMaxListingPages bounds how many listing pages a blog scraper follows.
const DefaultMaxListingPages = 50

// NoTitle is used for posts whose title selector matches nothing.
const NoTitle = "No Title"

// Blog describes how to scrape one blog site.
type Blog struct {
	// Name identifies the blog in logs.
	Name string `yaml:"name"`

	// ListingURL is the page listing the blog's posts.
	ListingURL string `yaml:"listing_url"`

	// LinkSelector selects the anchors pointing to posts on a listing page.
	LinkSelector string `yaml:"link_selector"`

	// LinkContains, if set, keeps only post links containing this substring.
	LinkContains string `yaml:"link_contains,omitempty"`

	// NextSelector, if set, selects the anchor to the next listing page.
	NextSelector string `yaml:"next_selector,omitempty"`

	// TitleSelector selects the post title element.
	TitleSelector string `yaml:"title_selector"`

	// ContentSelectors are tried in order; the first match holds the post body.
	ContentSelectors []string `yaml:"content_selectors"`

	// Author is recorded on every item from this blog.
	Author string `yaml:"author,omitempty"`
}

// Validate returns an error if the blog is missing required fields.
func (b *Blog) Validate() error {
	if b.ListingURL == "" {
		return Errorf(EINVALID, "blog listing URL required")
	}
	if b.LinkSelector == "" {
		return Errorf(EINVALID, "blog %q: link selector required", b.ListingURL)
	}
	if b.TitleSelector == "" {
		return Errorf(EINVALID, "blog %q: title selector required", b.ListingURL)
	}
	if len(b.ContentSelectors) == 0 {
		return Errorf(EINVALID, "blog %q: at least one content selector required", b.ListingURL)
	}
	return nil
}

// DisplayName returns Name, falling back to the listing URL.
func (b *Blog) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.ListingURL
}

// Listing is the result of parsing one listing page.
type Listing struct {
	// PostURLs are absolute post URLs in document order, without duplicates.
	PostURLs []string

	// NextURL is the absolute URL of the next listing page, or empty.
	NextURL string
}

// Post is the result of parsing one post page.
type Post struct {
	Title string

	// ContentHTML is the inner HTML of the first matching content selector.
	ContentHTML string

	// Matched reports whether any content selector matched.
	Matched bool
}

// BlogParser parses blog listing and post pages according to a Blog.
type BlogParser interface {
	ParseListing(html string, pageURL string, blog *Blog) (*Listing, error)
	ParsePost(html string, pageURL string, blog *Blog) (*Post, error)
}
