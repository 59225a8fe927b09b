package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/crystalscraper/crystal"
	"github.com/crystalscraper/crystal/cache"
	crystalchromedp "github.com/crystalscraper/crystal/chromedp"
	"github.com/crystalscraper/crystal/crawl"
	"github.com/crystalscraper/crystal/fetch"
	"github.com/crystalscraper/crystal/fs"
	"github.com/crystalscraper/crystal/gemini"
	crystalgoquery "github.com/crystalscraper/crystal/goquery"
	crystalhttp "github.com/crystalscraper/crystal/http"
	"github.com/crystalscraper/crystal/rod"
	"github.com/crystalscraper/crystal/scrape"
	crystalslog "github.com/crystalscraper/crystal/slog"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

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

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Depth       int           `short:"d" default:"0" help:"Link-following depth (0=single page, up to 2)"`
	LLM         bool          `default:"true" negatable:"" help:"Reformat text with Gemini when GEMINI_API_KEY is set"`
	Out         string        `short:"o" default:"." help:"Directory for report files"`
	Timeout     time.Duration `short:"t" default:"5m" help:"Budget for the whole scrape"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent fetch limit per crawl level"`
	MaxPages    int           `default:"30" help:"Hard ceiling on pages per scrape"`
	RPS         float64       `default:"1" help:"Requests per second per domain"`
	Cache       bool          `help:"Serve repeated fetches of a URL from memory"`
	CacheTTL    time.Duration `default:"24h" help:"Freshness window for cached pages"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	URL         string        `arg:"" required:"" help:"Website URL to scrape"`
	Filename    string        `arg:"" optional:"" help:"Custom report filename"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crystal"),
		kong.Description("Scrape website content to a plain-text report"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Fetch strategies, cheapest first. Heavier strategies get longer
	// per-attempt budgets.
	rodFetcher := rod.NewFetcher()
	chromedpFetcher := crystalchromedp.NewFetcher()

	var fetcher crystal.Fetcher = fetch.NewFallback([]fetch.Strategy{
		{Fetcher: crystalhttp.NewFetcher(), Timeout: 15 * time.Second},
		{Fetcher: rodFetcher, Timeout: 30 * time.Second},
		{Fetcher: chromedpFetcher, Timeout: 45 * time.Second},
	}, fetch.WithLogger(logger))

	if cli.Cache {
		fetcher = cache.NewFetcher(fetcher, cache.WithTTL(cli.CacheTTL))
	}
	fetcher = crystalslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   crystalgoquery.NewExtractor(),
		Limiter:     crawl.NewDomainLimiter(cli.RPS),
		Concurrency: cli.Concurrency,
		MaxPages:    cli.MaxPages,
		Logger:      logger,
	}

	var formatter crystal.Formatter
	if cli.LLM {
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
			if err != nil {
				return fmt.Errorf("failed to create gemini client: %w", err)
			}
			formatter = crystalslog.NewLoggingFormatter(gemini.NewFormatter(client), logger)
		} else {
			logger.Info("GEMINI_API_KEY not set, skipping LLM formatting")
		}
	}

	service := &scrape.Service{
		Crawler:   crawler,
		Formatter: formatter,
		Writer:    fs.NewWriter(cli.Out),
		Timeout:   cli.Timeout,
		Logger:    logger,
	}

	result, err := service.Scrape(ctx, crystal.Request{
		URL:        cli.URL,
		Depth:      cli.Depth,
		LLMEnabled: formatter != nil,
		Filename:   cli.Filename,
	})
	if err != nil {
		return err
	}

	printResult(stdout, result)

	if !result.Success {
		return fmt.Errorf("scrape failed: %s", result.Error)
	}
	return nil
}

// printResult writes the scrape summary to stdout.
func printResult(w io.Writer, result *crystal.Result) {
	fmt.Fprintf(w, "URL:     %s\n", result.URL)
	fmt.Fprintf(w, "Title:   %s\n", result.Title)
	fmt.Fprintf(w, "Success: %t\n", result.Success)
	if result.Error != "" {
		fmt.Fprintf(w, "Error:   %s\n", result.Error)
	}
	if result.Metadata != nil {
		fmt.Fprintf(w, "Pages:   %d (depth %d)\n", result.Metadata.TotalPages, result.Metadata.MaxDepth)
	}
	fmt.Fprintf(w, "Length:  %d chars\n", result.TotalLength)
	fmt.Fprintf(w, "Time:    %.2fs\n", result.ScrapeTime)
	fmt.Fprintf(w, "Report:  %s\n", result.Path)
}
