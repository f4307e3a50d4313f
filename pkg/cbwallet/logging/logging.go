package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const redactedPlaceholder = "[redacted]"

// Attribute keys used by the bindings' own log lines.
const (
	KeyFunction   = "function"
	KeyCode       = "code"
	KeyErrorKind  = "error_kind"
	KeyHandleKind = "handle_kind"
	KeyLive       = "live"
)

// secretKeys are attribute keys whose values never reach a backend, whoever
// logs them.
var secretKeys = map[string]bool{
	"secret":      true,
	"secret_key":  true,
	"private_key": true,
	"seed_words":  true,
	"passphrase":  true,
}

// Logger is the logging surface used by the wallet bindings. Both backends
// scrub values logged under a secret key before they are written.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by logger. nil binds to slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, scrub(args)...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, scrub(args)...)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, scrub(args)...)
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, scrub(args)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(scrub(args)...)}
}

// scrub replaces the value of every secret key, in key/value pairs and in
// slog.Attr form alike. args is returned as is when nothing needs replacing.
func scrub(args []any) []any {
	var out []any
	set := func(i int, v any) {
		if out == nil {
			out = append([]any(nil), args...)
		}
		out[i] = v
	}
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			if secretKeys[a.Key] && !strings.HasPrefix(a.Value.String(), redactedPlaceholder) {
				set(i, Redacted(a.Key))
			}
		case string:
			if i+1 < len(args) && secretKeys[a] {
				set(i+1, redactedPlaceholder)
			}
			i++
		}
	}
	if out == nil {
		return args
	}
	return out
}

// Redacted marks an attribute that holds secret material. Include it in place
// of the value.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// RedactedBytes is Redacted that keeps the length of b, which is often enough
// to tell a truncated key from a whole one.
func RedactedBytes(key string, b []byte) slog.Attr {
	return slog.String(key, fmt.Sprintf("%s (%d bytes)", redactedPlaceholder, len(b)))
}

// Placeholder returns the string that stands in for a redacted value.
func Placeholder() string {
	return redactedPlaceholder
}

// Function names the C function a log line is about.
func Function(name string) slog.Attr {
	return slog.String(KeyFunction, name)
}

// Code records a native error code.
func Code(code int32) slog.Attr {
	return slog.Int(KeyCode, int(code))
}

// ErrorKind records the symbolic name of a native error code.
func ErrorKind(kind string) slog.Attr {
	return slog.String(KeyErrorKind, kind)
}

// HandleKind names the engine entity a handle belongs to.
func HandleKind(kind string) slog.Attr {
	return slog.String(KeyHandleKind, kind)
}

// Live records a count of outstanding native handles.
func Live(n int64) slog.Attr {
	return slog.Int64(KeyLive, n)
}
