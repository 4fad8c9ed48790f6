package kbharvest

import (
	"cmp"
	"context"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxChapters is the number of chapters emitted when no cap is configured.
const DefaultMaxChapters = 8

// chapterPattern matches "chapter" followed by optional whitespace and digits,
// anywhere in a line.
var chapterPattern = regexp.MustCompile(`(?i)chapter\s*(\d+)`)

// PageSource provides sequential access to the text of a paginated document.
// PageText returns an empty string for pages without extractable text.
type PageSource interface {
	PageCount() int
	PageText(index int) string
	Close() error
}

// PageSourceOpener opens a paginated document by path.
// Implementations return EUNAVAILABLE when the document cannot be read at all.
type PageSourceOpener interface {
	Open(ctx context.Context, path string) (PageSource, error)
}

// ChapterMarker is a detected chapter start.
type ChapterMarker struct {
	PageIndex int
	Number    int
	Heading   string

	// Digits holds the chapter number when it does not fit in an int.
	// Number is then math.MaxInt.
	Digits string
}

// Label returns the chapter number as written in titles.
func (m ChapterMarker) Label() string {
	if m.Digits != "" {
		return m.Digits
	}
	return strconv.Itoa(m.Number)
}

// MarkerFunc is called for every chapter marker retained during the scan.
type MarkerFunc func(ChapterMarker)

// ChapterSpan is the half-open page range [Start, End) attributed to one chapter.
type ChapterSpan struct {
	Number  int
	Heading string
	Start   int
	End     int

	// Digits carries an oversized chapter number, see ChapterMarker.
	Digits string
}

// Title returns the display title of the chapter.
func (s ChapterSpan) Title() string {
	label := s.Digits
	if label == "" {
		label = strconv.Itoa(s.Number)
	}
	return "Chapter " + label + ": " + s.Heading
}

// ChapterRecord is one extracted chapter.
type ChapterRecord struct {
	Number int
	Title  string
	Text   string
}

// Segmenter splits a paginated book into chapters by scanning page text
// for "chapter N" headings.
type Segmenter struct {
	// MaxChapters caps the number of emitted chapters.
	// Values <= 0 use DefaultMaxChapters.
	MaxChapters int

	// OnMarker, if set, is called for each retained marker in scan order.
	OnMarker MarkerFunc
}

// Segment reads every page of src and returns its chapters ordered by
// chapter number. It does not close src.
func (s *Segmenter) Segment(src PageSource) []ChapterRecord {
	return s.SegmentPages(ReadPages(src))
}

// SegmentPages returns the chapters of an already-read document.
func (s *Segmenter) SegmentPages(pages []string) []ChapterRecord {
	maxChapters := s.MaxChapters
	if maxChapters <= 0 {
		maxChapters = DefaultMaxChapters
	}

	markers := OrderMarkers(FindChapterMarkers(pages, s.OnMarker))
	spans := BuildChapterSpans(markers, len(pages), maxChapters)
	return AssembleChapters(pages, spans)
}

// ReadPages reads the text of every page of src in order.
func ReadPages(src PageSource) []string {
	n := src.PageCount()
	pages := make([]string, n)
	for i := range n {
		pages[i] = src.PageText(i)
	}
	return pages
}

// FindChapterMarkers scans pages in order and returns the first marker found
// for each distinct chapter number, in discovery order. Each line contributes
// at most its first match.
func FindChapterMarkers(pages []string, onMarker MarkerFunc) []ChapterMarker {
	var markers []ChapterMarker
	seen := make(map[string]bool)

	for i, text := range pages {
		for _, line := range splitLines(text) {
			match := chapterPattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			digits := strings.TrimLeft(match[1], "0")
			if digits == "" {
				digits = "0"
			}
			if seen[digits] {
				continue
			}
			seen[digits] = true

			m := ChapterMarker{PageIndex: i, Heading: strings.TrimSpace(line)}
			if num, err := strconv.Atoi(digits); err == nil {
				m.Number = num
			} else {
				m.Number = math.MaxInt
				m.Digits = digits
			}
			markers = append(markers, m)
			if onMarker != nil {
				onMarker(m)
			}
		}
	}

	return markers
}

// OrderMarkers returns a copy of markers sorted by chapter number. When no
// marker names chapter 1, a synthetic one at page 0 is inserted so the
// opening pages are always attributed to a chapter.
func OrderMarkers(markers []ChapterMarker) []ChapterMarker {
	ordered := slices.Clone(markers)
	slices.SortStableFunc(ordered, compareMarkers)

	if slices.ContainsFunc(ordered, func(m ChapterMarker) bool { return m.Number == 1 }) {
		return ordered
	}

	pos := slices.IndexFunc(ordered, func(m ChapterMarker) bool { return m.Number > 1 })
	if pos == -1 {
		pos = len(ordered)
	}
	return slices.Insert(ordered, pos, ChapterMarker{PageIndex: 0, Number: 1, Heading: "Chapter 1"})
}

// compareMarkers orders markers by chapter number. Oversized numbers sort
// after every int and among themselves by their canonical digits.
func compareMarkers(a, b ChapterMarker) int {
	if c := cmp.Compare(a.Number, b.Number); c != 0 {
		return c
	}
	return cmp.Or(
		cmp.Compare(len(a.Digits), len(b.Digits)),
		cmp.Compare(a.Digits, b.Digits),
	)
}

// BuildChapterSpans converts ordered markers into page spans. Only the first
// maxChapters markers produce spans, but each span still ends at the page of
// the marker that follows it, even when that marker was cut by the cap.
func BuildChapterSpans(markers []ChapterMarker, pageCount, maxChapters int) []ChapterSpan {
	n := max(0, min(len(markers), maxChapters))
	spans := make([]ChapterSpan, 0, n)

	for i, m := range markers[:n] {
		end := pageCount
		if i+1 < len(markers) {
			end = markers[i+1].PageIndex
		}
		spans = append(spans, ChapterSpan{
			Number:  m.Number,
			Heading: m.Heading,
			Start:   m.PageIndex,
			End:     end,
			Digits:  m.Digits,
		})
	}

	return spans
}

// AssembleChapters joins the page text of each span. An inverted span, which
// only a mis-numbered document produces, yields empty text.
func AssembleChapters(pages []string, spans []ChapterSpan) []ChapterRecord {
	records := make([]ChapterRecord, 0, len(spans))

	for _, span := range spans {
		var text string
		if span.End > span.Start {
			end := min(span.End, len(pages))
			text = strings.TrimSpace(strings.Join(pages[span.Start:end], "\n"))
		}
		records = append(records, ChapterRecord{
			Number: span.Number,
			Title:  span.Title(),
			Text:   text,
		})
	}

	return records
}

// splitLines splits text on every line boundary a PDF text layer may emit.
// Empty lines are dropped since they can never hold a heading.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}
