package kbharvest

import "context"

// Compile-time interface verification.
var _ Source = (*BookSource)(nil)

// BookSource turns the chapters of a paginated book into knowledge-base items.
type BookSource struct {
	Path      string
	Opener    PageSourceOpener
	Segmenter *Segmenter
}

// NewBookSource creates a BookSource for the book at path.
func NewBookSource(path string, opener PageSourceOpener, segmenter *Segmenter) *BookSource {
	return &BookSource{Path: path, Opener: opener, Segmenter: segmenter}
}

// Name identifies the source by book path.
func (s *BookSource) Name() string {
	return "book " + s.Path
}

// ExtractChapters opens the book, segments it and closes it again.
// When the book cannot be opened the error carries EUNAVAILABLE and no
// chapters are returned; callers treat that as a degraded, non-fatal outcome.
func (s *BookSource) ExtractChapters(ctx context.Context) ([]ChapterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := s.Opener.Open(ctx, s.Path)
	if err != nil {
		if ErrorCode(err) == EUNAVAILABLE {
			return nil, err
		}
		return nil, Errorf(EUNAVAILABLE, "open book %s: %v", s.Path, err)
	}
	defer func() { _ = src.Close() }()

	segmenter := s.Segmenter
	if segmenter == nil {
		segmenter = &Segmenter{}
	}
	return segmenter.Segment(src), nil
}

// Harvest returns one book item per chapter.
func (s *BookSource) Harvest(ctx context.Context) ([]*Item, error) {
	chapters, err := s.ExtractChapters(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(chapters))
	for _, ch := range chapters {
		items = append(items, NewItem(ch.Title, ch.Text, ContentTypeBook, s.Path, ""))
	}
	return items, nil
}
