// ABOUTME: Custom error types for the digest pipeline failure taxonomy
// ABOUTME: Distinguishes recovered per-item degradations from run-fatal errors

package errors

import (
	"errors"
	"fmt"
)

// ConfigError represents a startup-fatal configuration problem.
// It aborts the run before any stage executes.
type ConfigError struct {
	File    string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.File, e.Message)
}

// FeedFetchError represents a per-feed retrieval or parse failure.
// It is recovered locally: the feed contributes zero articles and the run
// continues.
type FeedFetchError struct {
	URL     string
	Message string
}

// Error implements the error interface
func (e *FeedFetchError) Error() string {
	return fmt.Sprintf("feed fetch failed for %s: %s", e.URL, e.Message)
}

// ScoreParseError represents a per-article model reply that could not be
// parsed. It is recovered locally with a zero score and empty summary.
type ScoreParseError struct {
	Title   string
	Message string
}

// Error implements the error interface
func (e *ScoreParseError) Error() string {
	return fmt.Sprintf("score parse failed for %q: %s", e.Title, e.Message)
}

// BackendUnavailableError means the model backend is unreachable or the
// required model is not installed. It is fatal to the run: there is no
// point scoring partially when the backend is absent.
type BackendUnavailableError struct {
	Backend string
	Message string
}

// Error implements the error interface
func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %s", e.Backend, e.Message)
}

// DeliveryError represents an email transport or authentication failure.
// It is fatal to the delivery stage only; the rendered digest remains
// available for inspection.
type DeliveryError struct {
	Recipient string
	Message   string
}

// Error implements the error interface
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %s", e.Recipient, e.Message)
}

// IsConfig checks if an error is a ConfigError
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsFeedFetch checks if an error is a FeedFetchError
func IsFeedFetch(err error) bool {
	var fetchErr *FeedFetchError
	return errors.As(err, &fetchErr)
}

// IsBackendUnavailable checks if an error is a BackendUnavailableError
func IsBackendUnavailable(err error) bool {
	var backendErr *BackendUnavailableError
	return errors.As(err, &backendErr)
}

// IsDelivery checks if an error is a DeliveryError
func IsDelivery(err error) bool {
	var deliveryErr *DeliveryError
	return errors.As(err, &deliveryErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
