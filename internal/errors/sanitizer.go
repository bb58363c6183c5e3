// Package errors provides the error kinds shared by the analyzer packages
// and helpers that keep notifier credentials out of error messages.
package errors

import (
	"fmt"
	"regexp"
)

// Credential patterns to redact from error messages
var credentialPatterns = []*regexp.Regexp{
	// Telegram bot token: 123456789:ABC-DEF... (token part is typically 35-36 chars)
	regexp.MustCompile(`\d{8,12}:[a-zA-Z0-9_-]{30,}`),
	// Bearer tokens in headers
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_.-]+`),
	// Authorization headers (matches "authorization: value" or "authorization value")
	regexp.MustCompile(`(?i)authorization[:\s]+[^\s]+`),
	// API key or token in URLs
	regexp.MustCompile(`(?i)(api[_-]?key|token)[=:][^\s&"']+`),
}

const redactedPlaceholder = "[REDACTED]"

// SanitizeError wraps an error, redacting any credentials that may appear in the error message.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	sanitized := SanitizeString(err.Error())
	if sanitized == err.Error() {
		// Nothing redacted, keep the original chain intact
		return err
	}

	return &sanitizedError{
		original:  err,
		sanitized: sanitized,
	}
}

// SanitizeString redacts credential patterns from a string.
func SanitizeString(s string) string {
	result := s
	for _, pattern := range credentialPatterns {
		result = pattern.ReplaceAllString(result, redactedPlaceholder)
	}
	return result
}

// Wrapf wraps an error with a formatted message, sanitizing any credentials in the underlying error.
// Use it instead of fmt.Errorf("...: %w", err) when the error may carry the bot token.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, SanitizeError(err))
}

// sanitizedError wraps an error with a sanitized message.
type sanitizedError struct {
	original  error
	sanitized string
}

func (e *sanitizedError) Error() string {
	return e.sanitized
}

func (e *sanitizedError) Unwrap() error {
	return e.original
}
