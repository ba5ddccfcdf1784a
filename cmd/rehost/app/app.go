// Package app provides the application context and dependency management
// for the rehost CLI. It centralizes configuration, logging and the
// filesystem and fetcher used to assemble the served files.
package app

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/EthanYidong/rehost/internal/source"
	"github.com/EthanYidong/rehost/internal/transport"
)

// App represents the rehost application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// fs reads the site configuration and local sources.
	fs afero.Fs

	// fetcher retrieves remote sources.
	fetcher source.Fetcher

	// out receives command output; nil means stdout.
	out io.Writer
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and .env files and can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
		fetcher: transport.New(transport.WithUserAgent("rehost/" + version)),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFs sets the filesystem for the configuration file and local sources.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

// WithFetcher sets the client used for remote sources.
func WithFetcher(f source.Fetcher) Option {
	return func(a *App) error {
		a.fetcher = f
		return nil
	}
}

// WithOutput redirects command output, for tests and embedding.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
