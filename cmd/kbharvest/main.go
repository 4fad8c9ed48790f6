package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kbharvest"
	"github.com/fwojciec/kbharvest/crawl"
	"github.com/fwojciec/kbharvest/fs"
	"github.com/fwojciec/kbharvest/goquery"
	"github.com/fwojciec/kbharvest/htmltomarkdown"
	kbhttp "github.com/fwojciec/kbharvest/http"
	"github.com/fwojciec/kbharvest/pdf"
	"github.com/fwojciec/kbharvest/readability"
	"github.com/fwojciec/kbharvest/rod"
	kbslog "github.com/fwojciec/kbharvest/slog"
	"github.com/fwojciec/kbharvest/sqlite"
	"github.com/fwojciec/kbharvest/trafilatura"
	"github.com/fwojciec/kbharvest/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbharvest"),
		kong.Description("Harvest book chapters and blog posts into a knowledge-base JSON document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.MaxChapters < 1 {
		return kbharvest.Errorf(kbharvest.EINVALID, "--max-chapters must be at least 1, got %d", cli.MaxChapters)
	}

	logger, closeLog, err := openLogger(cli.LogFile, cli.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	if !cli.NoBook {
		segmenter := &kbharvest.Segmenter{
			MaxChapters: cli.MaxChapters,
			OnMarker:    kbslog.MarkerLogger(logger),
		}
		opener := kbslog.NewLoggingOpener(pdf.NewOpener(), logger)
		book := kbharvest.NewBookSource(cli.Book, opener, segmenter)
		deps.Sources = append(deps.Sources, kbslog.NewLoggingSource(book, logger))
	}

	if !cli.NoBlogs {
		blogs := defaultBlogs()
		if cli.Sources != "" {
			if blogs, err = yaml.LoadBlogsFile(cli.Sources); err != nil {
				return err
			}
		}

		httpFetcher := kbhttp.NewFetcher(kbhttp.WithTimeout(cli.Timeout))
		var fetcher kbharvest.Fetcher = httpFetcher
		if cli.RenderJS {
			rodFetcher, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render-js")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		}
		fetcher = kbslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		sitemaps := kbslog.NewLoggingSitemapService(kbhttp.NewSitemapService(httpFetcher.Client()), logger)
		limiter := crawl.NewDomainLimiter(cli.Rate)
		blogParser := goquery.NewBlogParser()
		fallback := newFallback(cli.Fallback)
		progress := ProgressReporter(stdout, stderr, logger)

		for _, blog := range blogs {
			scraper := &crawl.BlogScraper{
				Blog:        blog,
				Fetcher:     fetcher,
				Parser:      blogParser,
				Converter:   newConverter(cli.Markdown, blog),
				Fallback:    fallback,
				Sitemaps:    sitemaps,
				RateLimiter: limiter,
				Progress:    progress,
			}
			deps.Sources = append(deps.Sources, kbslog.NewLoggingSource(scraper, logger))
		}
	}

	if !cli.Preview {
		stores := multiStore{fs.NewKnowledgeBaseStore(cli.Output, cli.TeamID)}
		if cli.MarkdownDir != "" {
			stores = append(stores, fs.NewMarkdownStore(cli.MarkdownDir, cli.TeamID))
		}
		if cli.DB != "" {
			db := sqlite.NewDB(cli.DB)
			if err := db.Open(); err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			stores = append(stores, sqlite.NewItemStore(db, cli.TeamID))
		}
		deps.Store = stores
	}

	cmd := &HarvestCmd{Preview: cli.Preview}
	return cmd.Run(deps)
}

// openLogger creates the text logger for path. "-" logs to stderr.
func openLogger(path, level string, stderr io.Writer) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if path == "-" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}

// newFallback returns the main-content extractor named by kind, or nil.
func newFallback(kind string) kbharvest.Extractor {
	switch kind {
	case "trafilatura":
		return trafilatura.NewExtractor()
	case "readability":
		return readability.NewExtractor()
	default:
		return nil
	}
}

// newConverter returns the post converter for mode. Full conversion resolves
// relative links against the blog's origin.
func newConverter(mode string, blog *kbharvest.Blog) kbharvest.Converter {
	if mode != "full" {
		return goquery.NewFlattener()
	}
	u, err := url.Parse(blog.ListingURL)
	if err != nil || u.Host == "" {
		return htmltomarkdown.NewConverter()
	}
	return htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(u.Scheme + "://" + u.Host))
}
