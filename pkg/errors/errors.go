// Package errors provides custom error types for rehost.
// Every startup failure is one of four kinds (configuration, local I/O,
// remote fetch, listener bind) so callers can branch on them with
// errors.Is / errors.As and the CLI can print a precise diagnostic.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers need only one errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinel errors for each failure kind
var (
	// ErrInvalidConfig indicates the configuration file could not be read or decoded
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIO indicates a local file could not be read
	ErrIO = errors.New("io failure")

	// ErrFetch indicates a remote file could not be retrieved
	ErrFetch = errors.New("fetch failure")

	// ErrBind indicates the HTTP listener could not be opened
	ErrBind = errors.New("bind failure")
)

// ConfigError represents a configuration error
type ConfigError struct {
	Path    string
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("configuration error in %s (%s): %s", e.Path, e.Field, e.Message)
	case e.Path != "":
		return fmt.Sprintf("configuration error in %s: %s", e.Path, e.Message)
	case e.Field != "":
		return fmt.Sprintf("configuration error (%s): %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(path, field, message string, err error) *ConfigError {
	return &ConfigError{
		Path:    path,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during local I/O operations
type IOError struct {
	Operation string // "read", "stat", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// FetchError represents a failure to retrieve a remote file
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, statusCode int, message string, err error) *FetchError {
	return &FetchError{
		URL:        url,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// BindError represents a failure to open the HTTP listener
type BindError struct {
	Address string
	Message string
	Err     error
}

// Error implements the error interface
func (e *BindError) Error() string {
	return fmt.Sprintf("cannot bind %s: %s", e.Address, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *BindError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *BindError) Is(target error) bool {
	return target == ErrBind
}

// NewBindError creates a new BindError
func NewBindError(address string, err error) *BindError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &BindError{
		Address: address,
		Message: message,
		Err:     err,
	}
}

// Helper functions for error checking

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsIOError checks if an error is a local I/O error
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsFetchError checks if an error is a remote fetch error
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetch)
}

// IsBindError checks if an error is a listener bind error
func IsBindError(err error) bool {
	return errors.Is(err, ErrBind)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapFetch wraps an error as a FetchError
func WrapFetch(url string, err error) error {
	if err == nil {
		return nil
	}
	return NewFetchError(url, 0, err.Error(), err)
}

// WrapConfig wraps an error as a ConfigError for the given file
func WrapConfig(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewConfigError(path, "", err.Error(), err)
}

// WrapBind wraps an error as a BindError
func WrapBind(address string, err error) error {
	if err == nil {
		return nil
	}
	return NewBindError(address, err)
}
