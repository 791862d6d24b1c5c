// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// ConfigError represents a missing or invalid configuration value.
// Surfaced as a 4xx and never retried.
type ConfigError struct {
	Key     string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Key, e.Message)
}

// ResolutionError represents a failure to determine the target channel or
// community from the configured identifiers.
type ResolutionError struct {
	Target  string
	Message string
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unable to resolve %s: %s", e.Target, e.Message)
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string

	// HTMLBody records that the upstream body looked like an HTML error page.
	// The body itself is never carried so it cannot leak into responses.
	HTMLBody bool
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// ParseError represents malformed upstream JSON or feed content. Treated the
// same as a transient upstream error by the fallback chains.
type ParseError struct {
	Source  string
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %s", e.Source, e.Message)
}

// IsConfig checks if an error is a ConfigError
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsResolution checks if an error is a ResolutionError
func IsResolution(err error) bool {
	var resolutionErr *ResolutionError
	return errors.As(err, &resolutionErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// AsExternalAPI returns the ExternalAPIError in err's chain, if any.
func AsExternalAPI(err error) (*ExternalAPIError, bool) {
	var apiErr *ExternalAPIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
