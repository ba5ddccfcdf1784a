// Package constants provides shared constants used throughout rehost.
// This includes listener defaults, timeouts and file permissions that
// should be consistent between the CLI, the assembler and the server.
package constants

import "time"

// Listener defaults
const (
	// DefaultHost is the address the server binds to when none is given
	DefaultHost = "0.0.0.0"

	// DefaultPort is the port the server binds to when none is given
	DefaultPort = 8000

	// EnvPrefix is the prefix for environment variables read by the CLI (REHOST_PORT, ...)
	EnvPrefix = "REHOST"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the timeout for fetching a single remote file
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests may run after a shutdown signal
	ShutdownTimeout = 30 * time.Second

	// ReadTimeout is the server's request read timeout
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the server's response write timeout
	WriteTimeout = 10 * time.Second

	// IdleTimeout is how long keep-alive connections may stay idle
	IdleTimeout = 120 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// DefaultConcurrency is the number of sources resolved at once during assembly
	DefaultConcurrency = 1

	// MaxConcurrency caps --concurrency
	MaxConcurrency = 64
)

// UserAgent is sent with every remote fetch
const UserAgent = "rehost"
