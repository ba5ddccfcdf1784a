// Package server serves the assembled content store over HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/EthanYidong/rehost/internal/store"
	"github.com/EthanYidong/rehost/pkg/errors"
	"github.com/EthanYidong/rehost/pkg/logging"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	store     *store.Store
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance over a finished store.
func New(s *store.Store, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	logger.Debug().
		Int("files", s.Len()).
		Str("addr", cfg.Addr()).
		Msg("Creating new server instance")

	return &Server{
		store:     s,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Listen validates the configured address and opens the listener.
func (s *Server) Listen() (net.Listener, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return nil, errors.WrapBind(s.config.Addr(), err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then stops
// accepting and waits up to ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Int("files", s.store.Len()).
			Msg("Serving files")

		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		s.logger.Info().
			Dur("uptime", time.Since(s.startTime)).
			Msg("Server stopped gracefully")
		return nil
	}
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled. Bind failures are reported as BindError before any request
// is accepted.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
