package logging

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger initializes the global logger with zerolog
func InitLogger() {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	// Set log level from environment or default to Info
	level := zerolog.InfoLevel
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsedLevel
		}
	}

	zerolog.SetGlobalLevel(level)

	// Use console writer for development, JSON for production
	var out io.Writer = os.Stdout
	if os.Getenv("LOG_FORMAT") != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	// Rotated JSON copy on disk
	if file := os.Getenv("LOG_FILE"); file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Info logs an info message with optional fields
func Info() *zerolog.Event {
	return log.Info()
}

// Debug logs a debug message with optional fields
func Debug() *zerolog.Event {
	return log.Debug()
}

// Error logs an error message with optional fields
func Error() *zerolog.Event {
	return log.Error()
}

// Warn logs a warning message with optional fields
func Warn() *zerolog.Event {
	return log.Warn()
}

// Fatal logs a fatal message and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// InfoWithRequest returns an info logger event with request context (IP, method, URL)
func InfoWithRequest(r *http.Request) *zerolog.Event {
	return withRequest(log.Info(), r)
}

// ErrorWithRequest returns an error logger event with request context (IP, method, URL)
func ErrorWithRequest(r *http.Request) *zerolog.Event {
	return withRequest(log.Error(), r)
}

// DebugWithRequest returns a debug logger event with request context (IP, method, URL)
func DebugWithRequest(r *http.Request) *zerolog.Event {
	return withRequest(log.Debug(), r)
}

// WarnWithRequest returns a warn logger event with request context (IP, method, URL)
func WarnWithRequest(r *http.Request) *zerolog.Event {
	return withRequest(log.Warn(), r)
}

func withRequest(event *zerolog.Event, r *http.Request) *zerolog.Event {
	event = event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("client_ip", getClientIP(r))
	if id := RequestID(r.Context()); id != "" {
		event = event.Str("request_id", id)
	}
	return event
}

// DebugWithContext and WarnWithContext tag events with the request id
// carried by ctx, if any.
func DebugWithContext(ctx context.Context) *zerolog.Event {
	return withContext(log.Debug(), ctx)
}

func WarnWithContext(ctx context.Context) *zerolog.Event {
	return withContext(log.Warn(), ctx)
}

// WithContext returns an info logger event with context values
func WithContext(ctx context.Context) *zerolog.Event {
	return withContext(log.Info(), ctx)
}

func withContext(event *zerolog.Event, ctx context.Context) *zerolog.Event {
	if id := RequestID(ctx); id != "" {
		event = event.Str("request_id", id)
	}
	return event
}

// getClientIP extracts the real client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}
