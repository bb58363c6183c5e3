// Package logging wraps the application logger so that bot tokens and other
// credentials never reach the log file or the console.
package logging

import (
	"time"

	"github.com/olegiv/go-logger"
	internalerrors "github.com/olegiv/gclogs-analyzer-go/internal/errors"
	"github.com/rs/zerolog"
)

// eventLogger is the part of logger.Logger the wrapper needs.
type eventLogger interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
}

// SecureLogger redacts credentials from every string, error and message it
// logs.
type SecureLogger struct {
	log   eventLogger
	close func() error
}

// NewSecure wraps log.
func NewSecure(log *logger.Logger) *SecureLogger {
	return newSecure(log, log.Close)
}

func newSecure(log eventLogger, closeFn func() error) *SecureLogger {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &SecureLogger{log: log, close: closeFn}
}

// SecureEvent is a zerolog event whose string input is sanitized.
type SecureEvent struct {
	event *zerolog.Event
}

func (s *SecureLogger) Info() *SecureEvent {
	return &SecureEvent{event: s.log.Info()}
}

func (s *SecureLogger) Debug() *SecureEvent {
	return &SecureEvent{event: s.log.Debug()}
}

func (s *SecureLogger) Warn() *SecureEvent {
	return &SecureEvent{event: s.log.Warn()}
}

func (s *SecureLogger) Error() *SecureEvent {
	return &SecureEvent{event: s.log.Error()}
}

// Close closes the underlying logger.
func (s *SecureLogger) Close() error {
	return s.close()
}

// Str adds a sanitized string field.
func (e *SecureEvent) Str(key, val string) *SecureEvent {
	e.event.Str(key, internalerrors.SanitizeString(val))
	return e
}

func (e *SecureEvent) Int(key string, val int) *SecureEvent {
	e.event.Int(key, val)
	return e
}

func (e *SecureEvent) Int64(key string, val int64) *SecureEvent {
	e.event.Int64(key, val)
	return e
}

func (e *SecureEvent) Float64(key string, val float64) *SecureEvent {
	e.event.Float64(key, val)
	return e
}

func (e *SecureEvent) Bool(key string, val bool) *SecureEvent {
	e.event.Bool(key, val)
	return e
}

// Time adds a timestamp field. Zero times are logged as empty strings.
func (e *SecureEvent) Time(key string, val time.Time) *SecureEvent {
	if val.IsZero() {
		e.event.Str(key, "")
		return e
	}
	e.event.Time(key, val)
	return e
}

// Dur adds a duration field in seconds.
func (e *SecureEvent) Dur(key string, val time.Duration) *SecureEvent {
	e.event.Float64(key, val.Seconds())
	return e
}

// Err adds a sanitized error field. Nil errors are skipped.
func (e *SecureEvent) Err(err error) *SecureEvent {
	if err != nil {
		e.event.Err(internalerrors.SanitizeError(err))
	}
	return e
}

// Fields adds every entry of fields, sanitizing string values.
func (e *SecureEvent) Fields(fields map[string]interface{}) *SecureEvent {
	for k, v := range fields {
		e.Interface(k, v)
	}
	return e
}

// Interface adds a field of any type. Strings and errors are sanitized,
// other values are logged as they are.
func (e *SecureEvent) Interface(key string, val interface{}) *SecureEvent {
	switch v := val.(type) {
	case string:
		e.event.Str(key, internalerrors.SanitizeString(v))
	case error:
		e.event.Str(key, internalerrors.SanitizeString(v.Error()))
	default:
		e.event.Interface(key, val)
	}
	return e
}

// Msg sends the event with a sanitized message.
func (e *SecureEvent) Msg(msg string) {
	e.event.Msg(internalerrors.SanitizeString(msg))
}

// Msgf sends the event with a formatted message. String and error arguments
// are sanitized before formatting.
func (e *SecureEvent) Msgf(format string, v ...interface{}) {
	sanitizedArgs := make([]interface{}, len(v))
	for i, arg := range v {
		switch a := arg.(type) {
		case string:
			sanitizedArgs[i] = internalerrors.SanitizeString(a)
		case error:
			sanitizedArgs[i] = internalerrors.SanitizeError(a)
		default:
			sanitizedArgs[i] = arg
		}
	}
	e.event.Msgf(format, sanitizedArgs...)
}
