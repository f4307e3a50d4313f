// Package logging provides a minimal logging facade for the wallet bindings.
//
// The Logger interface wraps the context-aware subset of log/slog:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Backends
//
//	// slog (nil binds to slog.Default())
//	logger := logging.New(nil)
//
//	// zap, as used by services embedding the bindings
//	logger, err := logging.FromConfig("debug", true)
//
//	// discard everything
//	logger := logging.Nop()
//
// # Redaction
//
// Secret keys and seed words never reach a log line. Mark the attribute instead:
//
//	logger.Info(ctx, "wallet recovered", logging.Redacted("seed_words"))
//	// seed_words="[redacted]"
//
// # What the bindings log
//
//   - native call failures, at debug level, with the C function and code
//   - handles released by the finalizer safety net, at warn level
//   - library close with live handles outstanding, at warn level
package logging
