package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	saucierhttp "github.com/fwojciec/saucier/http"
	"github.com/fwojciec/saucier/sqlite"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := saucierhttp.NewServer()
	srv.Addr = c.Addr
	srv.Fetcher = deps.Fetcher
	srv.Extractor = deps.Extractor
	srv.Logger = deps.Logger

	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache database at %q: %w", c.DB, err)
		}
		defer db.Close()

		srv.Recipes = sqlite.NewRecipeService(db)
		srv.CacheTTL = c.CacheTTL
		deps.Logger.Info().Str("db", c.DB).Dur("ttl", c.CacheTTL).Msg("caching enabled")
	}

	if err := srv.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	deps.Logger.Info().Str("url", srv.URL()).Msg("listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Close(shutdownCtx)
	})

	return g.Wait()
}
