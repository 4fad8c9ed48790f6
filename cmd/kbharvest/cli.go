package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/kbharvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Sources are harvested in order.
	Sources []kbharvest.Source

	// Store receives every harvested item. Unused in preview mode.
	Store kbharvest.ItemStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Book        string        `default:"Aline_Book_First8Chapters.pdf" env:"KBHARVEST_BOOK" help:"Path to the book PDF"`
	NoBook      bool          `name:"no-book" help:"Skip the book"`
	MaxChapters int           `name:"max-chapters" default:"8" env:"KBHARVEST_MAX_CHAPTERS" help:"Maximum number of chapters taken from the book"`
	TeamID      string        `name:"team-id" default:"aline123" env:"KBHARVEST_TEAM_ID" help:"Team ID recorded in the knowledge base"`
	Output      string        `short:"o" default:"aline_knowledgebase_output.json" env:"KBHARVEST_OUTPUT" help:"Knowledge-base JSON output path"`
	Sources     string        `short:"s" env:"KBHARVEST_SOURCES" help:"YAML file with blog definitions (replaces the built-in blogs)"`
	NoBlogs     bool          `name:"no-blogs" help:"Skip all blogs"`
	Markdown    string        `enum:"flat,full" default:"flat" help:"Post conversion: flat keeps headings, paragraphs and list items; full converts all markup"`
	Fallback    string        `enum:"trafilatura,readability,none" default:"trafilatura" help:"Main-content extractor used when no content selector matches"`
	RenderJS    bool          `name:"render-js" help:"Render blog pages in headless Chrome"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Rate        float64       `default:"1" help:"Requests per second per host (0 disables pacing)"`
	DB          string        `name:"db" env:"KBHARVEST_DB" help:"Also record the harvest in this SQLite database"`
	MarkdownDir string        `name:"markdown-dir" help:"Also write one markdown file per item under this directory"`
	LogFile     string        `name:"log-file" default:"kbharvest.log" env:"KBHARVEST_LOG_FILE" help:"Log file path (- for stderr)"`
	LogLevel    string        `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Log level"`
	Preview     bool          `short:"p" help:"Print harvested titles and URLs without writing output"`
}

// HarvestCmd runs every source and writes the knowledge base.
type HarvestCmd struct {
	Preview bool
}
