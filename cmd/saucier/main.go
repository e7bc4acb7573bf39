package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/saucier/extract"
	"github.com/fwojciec/saucier/goquery"
	saucierhttp "github.com/fwojciec/saucier/http"
	"github.com/fwojciec/saucier/schemaorg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Local .env files carry SCRAPER_API_KEY and friends during development.
	// Missing files are fine.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("saucier"),
		kong.Description("Extract structured recipe data from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'saucier --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	deps.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).
		Level(level).
		With().Timestamp().Logger()

	opts := []saucierhttp.Option{saucierhttp.WithTimeout(cli.Timeout)}
	if cli.ScraperAPIKey != "" {
		opts = append(opts, saucierhttp.WithProxy(cli.ScraperAPIKey, cli.ScraperCountry))
	}
	if cli.RateLimit > 0 {
		opts = append(opts, saucierhttp.WithRateLimit(cli.RateLimit))
	}
	fetcher := saucierhttp.NewFetcher(opts...)
	defer fetcher.Close()

	deps.Fetcher = fetcher
	deps.Extractor = extract.NewPipeline(schemaorg.NewExtractor(), goquery.NewExtractor())

	return kongCtx.Run(deps)
}
