// Package yaml loads blog definitions from YAML sources files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/kbharvest"
	"gopkg.in/yaml.v3"
)

// sourcesFile is the document layout of a sources file:
//
//	blogs:
//	  - name: Quill
//	    listing_url: https://quill.co/blog
//	    link_selector: a.card-title
//	    title_selector: h1
//	    content_selectors: [div.article-content]
type sourcesFile struct {
	Blogs []*kbharvest.Blog `yaml:"blogs"`
}

// LoadBlogs decodes and validates the blogs of a sources document.
// Unknown keys are rejected so typos in selector names surface early.
func LoadBlogs(r io.Reader) ([]*kbharvest.Blog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc sourcesFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, kbharvest.Errorf(kbharvest.EINVALID, "sources file is empty")
		}
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "decode sources: %v", err)
	}
	if len(doc.Blogs) == 0 {
		return nil, kbharvest.Errorf(kbharvest.EINVALID, "sources file defines no blogs")
	}

	for i, blog := range doc.Blogs {
		if blog == nil {
			return nil, kbharvest.Errorf(kbharvest.EINVALID, "blog #%d is empty", i+1)
		}
		if err := blog.Validate(); err != nil {
			return nil, kbharvest.Errorf(kbharvest.EINVALID, "blog #%d: %s", i+1, kbharvest.ErrorMessage(err))
		}
	}
	return doc.Blogs, nil
}

// LoadBlogsFile reads blogs from the sources file at path.
func LoadBlogsFile(path string) ([]*kbharvest.Blog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer f.Close()
	return LoadBlogs(f)
}
