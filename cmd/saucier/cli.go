package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/saucier"
	"github.com/rs/zerolog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    zerolog.Logger
	Fetcher   saucier.Fetcher
	Extractor saucier.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve ServeCmd `cmd:"" help:"Run the extraction HTTP server"`
	Get   GetCmd   `cmd:"" help:"Extract a recipe from a URL and print it as JSON"`

	Verbose        bool          `short:"v" help:"Enable debug logging"`
	Timeout        time.Duration `default:"25s" help:"Per-request fetch timeout"`
	RateLimit      float64       `name:"rate-limit" default:"0" help:"Max fetches per second per domain (0 disables the limit)"`
	ScraperAPIKey  string        `env:"SCRAPER_API_KEY" help:"ScraperAPI key enabling the proxy fallback for blocked sites"`
	ScraperCountry string        `env:"SCRAPER_COUNTRY" default:"au" help:"ScraperAPI country code"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string        `default:":10000" env:"SAUCIER_ADDR" help:"HTTP bind address"`
	DB       string        `env:"SAUCIER_DB" help:"SQLite cache path (empty disables caching)"`
	CacheTTL time.Duration `name:"cache-ttl" default:"24h" help:"How long cached results stay fresh"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL string `arg:"" help:"Recipe page URL"`
}
