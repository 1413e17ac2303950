// Package errors provides custom error types for the pricedeck system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the pricedeck system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigMissing indicates that required configuration is absent
	ErrConfigMissing = errors.New("configuration missing")

	// ErrFeedUnavailable indicates that an external feed could not be reached
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// APIError represents an error from an external HTTP API (a feed or the store)
type APIError struct {
	Source     string // Which API produced the error (e.g., "openrouter", "store")
	Endpoint   string // The endpoint that was called
	StatusCode int    // HTTP status code if available
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	return target == ErrFeedUnavailable
}

// ParseError represents a failure to parse data in an expected format
type ParseError struct {
	Format string // The format being parsed (e.g., "json", "yaml")
	Source string // What was being parsed (e.g., a URL or file)
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: %v", e.Format, e.Source, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ResourceError represents a failed operation on a stored resource
type ResourceError struct {
	Operation string // The operation attempted (e.g., "create", "update", "delete")
	Resource  string // The resource type (e.g., "provider", "model", "price")
	ID        string // The resource identifier
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ConfigError represents missing or invalid configuration
type ConfigError struct {
	Key     string // The configuration key (e.g., an environment variable name)
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Key, e.Message)
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfigMissing
}

// Helper wrapping functions for common patterns

// WrapAPI wraps an error as an APIError
func WrapAPI(source, endpoint string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Source:     source,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Err: err}
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}
