package main

import "github.com/fwojciec/kbharvest"

// defaultBlogs returns the blogs harvested when no sources file is given.
func defaultBlogs() []*kbharvest.Blog {
	return []*kbharvest.Blog{
		{
			Name:             "interviewing.io",
			ListingURL:       "https://interviewing.io/blog",
			LinkSelector:     "a[href]",
			LinkContains:     "/blog/",
			TitleSelector:    "h1",
			ContentSelectors: []string{"div.prose", "article", "body"},
		},
		{
			Name:             "Nil Mamano DSA",
			ListingURL:       "https://nilmamano.com/blog/category/dsa",
			LinkSelector:     "h2.entry-title a",
			NextSelector:     "a.next.page-numbers",
			TitleSelector:    "h1.entry-title",
			ContentSelectors: []string{"div.entry-content"},
			Author:           "Nil Mamano",
		},
		{
			Name:             "Quill",
			ListingURL:       "https://quill.co/blog",
			LinkSelector:     "a.card-title",
			TitleSelector:    "h1",
			ContentSelectors: []string{"div.article-content"},
		},
	}
}
