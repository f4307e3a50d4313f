package cbwallet

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi/cabi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/logging"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/metrics"
)

// ErrNotBuilt reports that the native engine was not linked into the binary.
var ErrNotBuilt = cabi.ErrNotBuilt

// Library binds an abi.Engine to the logger and metrics every wrapper reports
// to. All wrappers created from a Library share its engine.
type Library struct {
	cfg     Config
	engine  abi.Engine
	logger  logging.Logger
	metrics *metrics.Collector

	closed atomic.Bool
	live   atomic.Int64
}

// Option customises Open.
type Option func(*Library)

// WithEngine uses engine instead of the linked native library.
func WithEngine(engine abi.Engine) Option {
	return func(l *Library) { l.engine = engine }
}

// WithLogger overrides the logger built from Config.Log.
func WithLogger(logger logging.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithMetrics overrides the collector built from Config.Metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(l *Library) { l.metrics = c }
}

// Open prepares the bindings. Without WithEngine it links the native engine
// and fails with ErrNotBuilt when the binary was built without it, or with a
// ValidationError when cfg selects the fake engine.
func Open(cfg Config, opts ...Option) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Library{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}

	if l.engine == nil {
		if cfg.EngineName() == EngineFake {
			return nil, &ValidationError{Field: "engine", Reason: "fake engine selected but none supplied with WithEngine"}
		}
		engine, err := cabi.New()
		if err != nil {
			return nil, err
		}
		l.engine = engine
	}

	if l.logger == nil {
		if cfg.Log.Level != "" {
			logger, err := logging.FromConfig(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return nil, fmt.Errorf("cbwallet: %w", err)
			}
			l.logger = logger
		} else {
			l.logger = logging.New(nil)
		}
	}

	if l.metrics == nil && cfg.Metrics.Enabled {
		l.metrics = metrics.NewCollector(cfg.Metrics.Namespace)
	}

	return l, nil
}

// Config returns the configuration the library was opened with.
func (l *Library) Config() Config { return l.cfg }

// Engine returns the engine every call goes through.
func (l *Library) Engine() abi.Engine { return l.engine }

// Logger returns the library logger.
func (l *Library) Logger() logging.Logger { return l.logger }

// Metrics returns the collector, or nil when metrics are disabled.
func (l *Library) Metrics() *metrics.Collector { return l.metrics }

// Zeroize wipes buf when Config.EnableZeroization is set and leaves it
// untouched otherwise.
func (l *Library) Zeroize(buf []byte) {
	if l == nil || !l.cfg.EnableZeroization {
		return
	}
	ZeroizeBytes(buf)
}

// Ready reports whether new native calls may be issued.
func (l *Library) Ready() error {
	if l == nil {
		return ErrNilLibrary
	}
	if l.closed.Load() {
		return ErrLibraryClosed
	}
	return nil
}

// NoteHandle adjusts the count of handles owned by wrappers of this library.
// Wrappers call it on adoption (+1) and on destroy (-1).
func (l *Library) NoteHandle(delta int64) {
	l.live.Add(delta)
}

// LiveHandles returns the number of handles adopted and not yet destroyed.
func (l *Library) LiveHandles() int64 {
	if l == nil {
		return 0
	}
	return l.live.Load()
}

// Close stops the library from issuing new native calls. Wrappers stay
// closable afterwards so their handles can still be destroyed. A second Close
// returns ErrLibraryClosed.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	if !l.closed.CompareAndSwap(false, true) {
		return ErrLibraryClosed
	}
	if n := l.live.Load(); n > 0 {
		l.logger.Warn(context.Background(), "library closed with live native handles", logging.Live(n))
	}
	return nil
}
