package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/kbharvest"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ kbharvest.ItemStore = (*MarkdownStore)(nil)

// MarkdownStore mirrors items as markdown files with YAML front matter.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
type MarkdownStore struct {
	baseDir string
	name    string

	// Now returns the harvest date written to front matter.
	Now func() time.Time
}

// NewMarkdownStore creates a new MarkdownStore.
func NewMarkdownStore(baseDir, name string) *MarkdownStore {
	return &MarkdownStore{
		baseDir: baseDir,
		name:    name,
		Now:     time.Now,
	}
}

func (s *MarkdownStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *MarkdownStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes item to the temporary directory.
func (s *MarkdownStore) Save(ctx context.Context, item *kbharvest.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	relPath, err := ItemPath(item)
	if err != nil {
		return err
	}
	if !filepath.IsLocal(relPath) {
		return kbharvest.Errorf(kbharvest.EINVALID, "path traversal in %q", item.SourceURL)
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatItem(item, s.Now())
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the final directory with the temporary one. Committing
// without any saved item produces an empty directory.
func (s *MarkdownStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the temporary directory.
func (s *MarkdownStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// frontMatter is the YAML header of a mirrored item.
type frontMatter struct {
	Title     string `yaml:"title"`
	Type      string `yaml:"type"`
	Source    string `yaml:"source"`
	Author    string `yaml:"author,omitempty"`
	Harvested string `yaml:"harvested"`
}

// FormatItem renders item as markdown with YAML front matter.
func FormatItem(item *kbharvest.Item, harvested time.Time) (string, error) {
	header, err := yaml.Marshal(frontMatter{
		Title:     item.Title,
		Type:      string(item.ContentType),
		Source:    item.SourceURL,
		Author:    item.Author,
		Harvested: harvested.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(item.Content)
	b.WriteString("\n")
	return b.String(), nil
}

// ItemPath returns the relative file path of an item. Blog posts map their
// URL host and path (https://quill.co/blog/post becomes quill.co/blog/post.md);
// book chapters are stored under book/ by title.
func ItemPath(item *kbharvest.Item) (string, error) {
	if item.ContentType == kbharvest.ContentTypeBook {
		return filepath.Join("book", slugify(item.Title)+".md"), nil
	}

	u, err := url.Parse(item.SourceURL)
	if err != nil {
		return "", kbharvest.Errorf(kbharvest.EINVALID, "invalid source URL: %v", err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		path = "index.md"
	case strings.HasSuffix(path, "/"):
		path += "index.md"
	default:
		path += ".md"
	}
	return filepath.Join(u.Host, filepath.FromSlash(path)), nil
}

// slugify lowercases s and collapses every run of non-alphanumerics into "-".
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}
