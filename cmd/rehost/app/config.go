package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/EthanYidong/rehost/internal/server"
	"github.com/EthanYidong/rehost/pkg/constants"
	"github.com/EthanYidong/rehost/pkg/errors"
)

// Config holds the process configuration loaded from environment
// variables and .env files. Command-line flags are bound to the same
// fields and take precedence.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Listener settings
	Host string
	Port int

	// Override lets environment variables take precedence over vars.
	Override bool

	// Concurrency bounds parallel source resolution.
	Concurrency int

	// ShutdownTimeout bounds request draining after a signal.
	ShutdownTimeout time.Duration

	// Format selects inspect output: table, json or yaml.
	Format string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. REHOST_* environment variables
// 3. .env files
// 4. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", constants.DefaultHost)
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("override", false)
	v.SetDefault("concurrency", constants.DefaultConcurrency)
	v.SetDefault("shutdown-timeout", constants.ShutdownTimeout)

	port, err := server.ParsePort(v.GetString("port"))
	if err != nil {
		return nil, errors.NewConfigError("", constants.EnvPrefix+"_PORT", err.Error(), err)
	}

	config := &Config{
		Host:            v.GetString("host"),
		Port:            port,
		Override:        v.GetBool("override"),
		Concurrency:     v.GetInt("concurrency"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
		NoColor:     os.Getenv("NO_COLOR") != "",
	}

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = constants.ShutdownTimeout
	}

	return config, nil
}

// ServerConfig returns the listener configuration for the HTTP server.
func (c *Config) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.ShutdownTimeout = c.ShutdownTimeout
	return cfg
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set in the environment are never overwritten.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
