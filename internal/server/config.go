package server

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/EthanYidong/rehost/pkg/constants"
	"github.com/EthanYidong/rehost/pkg/errors"
)

// Config holds server configuration.
type Config struct {
	// Listener settings. Host must be an IP literal.
	Host string
	Port int

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// ShutdownTimeout bounds how long in-flight requests may run once the
	// serve context is cancelled.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		ReadTimeout:     constants.ReadTimeout,
		WriteTimeout:    constants.WriteTimeout,
		IdleTimeout:     constants.IdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks that the host is an IP address and the port is in range.
func (c Config) Validate() error {
	if net.ParseIP(c.Host) == nil {
		return errors.NewBindError(c.Addr(), fmt.Errorf("host %q is not an IP address", c.Host))
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewBindError(c.Addr(), fmt.Errorf("port out of range: %d", c.Port))
	}
	return nil
}

// ParsePort safely parses a port string to integer.
func ParsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 0 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}
