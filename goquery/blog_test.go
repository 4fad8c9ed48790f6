package goquery_test

import (
	"testing"

	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogParser_ParseListing(t *testing.T) {
	t.Parallel()

	t.Run("resolves and deduplicates post links in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="cards">
	<a class="card-title" href="/blog/second">Second</a>
	<a class="card-title" href="https://quill.co/blog/first#comments">First</a>
	<a class="card-title" href="/blog/second">Second again</a>
	<a class="other" href="/pricing">Pricing</a>
</div>
</body></html>`
		blog := &kbharvest.Blog{LinkSelector: "a.card-title"}

		listing, err := goquery.NewBlogParser().ParseListing(html, "https://quill.co/blog", blog)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://quill.co/blog/second",
			"https://quill.co/blog/first",
		}, listing.PostURLs)
		assert.Empty(t, listing.NextURL)
	})

	t.Run("keeps only links containing the configured substring", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/">Home</a><a href="/pricing">Pricing</a></nav>
<a href="/blog/how-to-prepare">Prepare</a>
<a href="/blog/system-design">System design</a>
<a href="/blog">All posts</a>
</body></html>`
		blog := &kbharvest.Blog{LinkSelector: "a[href]", LinkContains: "/blog/"}

		listing, err := goquery.NewBlogParser().ParseListing(html, "https://interviewing.io/blog", blog)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://interviewing.io/blog/how-to-prepare",
			"https://interviewing.io/blog/system-design",
		}, listing.PostURLs)
	})

	t.Run("skips non-HTTP and empty links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="javascript:void(0)">JS</a>
<a href="mailto:hi@example.com">Mail</a>
<a href="">Empty</a>
<a>No href</a>
<a href="/post">Post</a>
</body></html>`
		blog := &kbharvest.Blog{LinkSelector: "a"}

		listing, err := goquery.NewBlogParser().ParseListing(html, "https://example.com/blog", blog)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/post"}, listing.PostURLs)
	})

	t.Run("reads the next page link", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 class="entry-title"><a href="https://nilmamano.com/blog/heaps">Heaps</a></h2>
<h2 class="entry-title"><a href="https://nilmamano.com/blog/tries">Tries</a></h2>
<a class="prev page-numbers" href="/blog/category/dsa/">Prev</a>
<a class="next page-numbers" href="/blog/category/dsa/page/3/">Next</a>
</body></html>`
		blog := &kbharvest.Blog{
			LinkSelector: "h2.entry-title a",
			NextSelector: "a.next.page-numbers",
		}

		listing, err := goquery.NewBlogParser().ParseListing(html, "https://nilmamano.com/blog/category/dsa/page/2/", blog)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://nilmamano.com/blog/heaps",
			"https://nilmamano.com/blog/tries",
		}, listing.PostURLs)
		assert.Equal(t, "https://nilmamano.com/blog/category/dsa/page/3/", listing.NextURL)
	})

	t.Run("returns error for invalid page URL", func(t *testing.T) {
		t.Parallel()

		blog := &kbharvest.Blog{LinkSelector: "a"}

		_, err := goquery.NewBlogParser().ParseListing("<html></html>", "://bad", blog)

		assert.Equal(t, kbharvest.EINVALID, kbharvest.ErrorCode(err))
	})
}

func TestBlogParser_ParsePost(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and first matching content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1 class="entry-title">  Binary Search  </h1>
<div class="entry-content"><p>Halve the range.</p></div>
</body></html>`
		blog := &kbharvest.Blog{
			TitleSelector:    "h1.entry-title",
			ContentSelectors: []string{"div.entry-content"},
		}

		post, err := goquery.NewBlogParser().ParsePost(html, "https://nilmamano.com/blog/bs", blog)

		require.NoError(t, err)
		assert.Equal(t, "Binary Search", post.Title)
		assert.Equal(t, "<p>Halve the range.</p>", post.ContentHTML)
		assert.True(t, post.Matched)
	})

	t.Run("falls through content selectors in order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Post</h1>
<article><p>Article body</p></article>
</body></html>`
		blog := &kbharvest.Blog{
			TitleSelector:    "h1",
			ContentSelectors: []string{"div.prose", "article", "body"},
		}

		post, err := goquery.NewBlogParser().ParsePost(html, "https://interviewing.io/blog/p", blog)

		require.NoError(t, err)
		assert.Equal(t, "<p>Article body</p>", post.ContentHTML)
	})

	t.Run("uses placeholder title and reports no content match", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Nothing useful</p></body></html>`
		blog := &kbharvest.Blog{
			TitleSelector:    "h1",
			ContentSelectors: []string{"div.article-content"},
		}

		post, err := goquery.NewBlogParser().ParsePost(html, "https://quill.co/blog/p", blog)

		require.NoError(t, err)
		assert.Equal(t, kbharvest.NoTitle, post.Title)
		assert.Empty(t, post.ContentHTML)
		assert.False(t, post.Matched)
	})
}
