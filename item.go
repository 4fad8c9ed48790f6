package kbharvest

import (
	"context"
	"strings"
)

// ContentType classifies a knowledge-base item by origin.
type ContentType string

// Supported content types.
const (
	ContentTypeBook ContentType = "book"
	ContentTypeBlog ContentType = "blog"
)

// Item is one entry of the knowledge base.
type Item struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"source_url"`
	Author      string      `json:"author"`
	UserID      string      `json:"user_id"`
}

// NewItem returns an item with trimmed content and an empty user ID.
func NewItem(title, content string, contentType ContentType, sourceURL, author string) *Item {
	return &Item{
		Title:       title,
		Content:     strings.TrimSpace(content),
		ContentType: contentType,
		SourceURL:   sourceURL,
		Author:      author,
		UserID:      "",
	}
}

// Validate returns an error if the item contains invalid fields.
// Empty titles and content are allowed: a post whose title element is
// blank is still recorded.
func (i *Item) Validate() error {
	if i.SourceURL == "" {
		return Errorf(EINVALID, "item source URL required")
	}
	switch i.ContentType {
	case ContentTypeBook, ContentTypeBlog:
	default:
		return Errorf(EINVALID, "unknown content type %q", i.ContentType)
	}
	return nil
}

// KnowledgeBase is the document written at the end of a harvest.
type KnowledgeBase struct {
	TeamID string  `json:"team_id"`
	Items  []*Item `json:"items"`
}

// Source produces knowledge-base items from one origin (a book, a blog).
// A Source reports failures it could not work around as an error; partial
// results are returned alongside per-item failures that were skipped.
type Source interface {
	// Name identifies the source in logs and progress output.
	Name() string

	// Harvest collects all items from the source.
	Harvest(ctx context.Context) ([]*Item, error)
}

// ItemStore persists items with atomic semantics.
// Save stages an item; Commit makes staged items permanent;
// Abort discards them.
type ItemStore interface {
	Save(ctx context.Context, item *Item) error
	Commit() error
	Abort() error
}
