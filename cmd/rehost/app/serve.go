package app

import (
	"context"

	"github.com/EthanYidong/rehost/internal/assemble"
	"github.com/EthanYidong/rehost/internal/config"
	"github.com/EthanYidong/rehost/internal/interp"
	"github.com/EthanYidong/rehost/internal/server"
	"github.com/EthanYidong/rehost/internal/source"
	"github.com/EthanYidong/rehost/internal/store"
	"github.com/EthanYidong/rehost/pkg/logging"
)

// Assemble loads the site configuration at path and builds the store.
// Assembly runs to completion even if ctx is cancelled by a signal.
func (a *App) Assemble(ctx context.Context, path string) (*store.Store, error) {
	logger := a.logger.With().Str("config", path).Logger()

	cfg, err := config.LoadFs(a.fs, path)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("files", len(cfg.Files)).
		Int("vars", len(cfg.Vars)).
		Bool("override", a.config.Override).
		Msg("Loaded configuration")

	engine := interp.New(cfg.Vars, a.config.Override)
	resolver := source.NewResolver(
		source.WithFs(a.fs),
		source.WithFetcher(a.fetcher),
		source.WithExpander(engine),
	)

	ctx = logging.WithOperation(context.WithoutCancel(ctx), "assemble")
	return assemble.Assemble(ctx, cfg, assemble.Options{
		UseEnv:      a.config.Override,
		Lookup:      engine.Lookup,
		Resolver:    resolver,
		Concurrency: a.config.Concurrency,
		Logger:      &logger,
	})
}

// runServe assembles the files and serves them until ctx is cancelled.
func (a *App) runServe(ctx context.Context, path string) error {
	files, err := a.Assemble(ctx, path)
	if err != nil {
		return err
	}

	// A signal received during assembly ends the process without binding.
	if ctx.Err() != nil {
		return nil
	}

	srv := server.New(files, a.config.ServerConfig(), a.logger)
	return srv.ListenAndServe(ctx)
}
