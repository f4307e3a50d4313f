// Package metrics exposes Prometheus collectors for the native handle
// binding: handle lifetimes per entity kind and native call outcomes per C
// function.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records binding metrics. A nil *Collector is valid and records
// nothing.
type Collector struct {
	registry *prometheus.Registry

	handlesLive      *prometheus.GaugeVec
	handlesCreated   *prometheus.CounterVec
	handlesDestroyed *prometheus.CounterVec
	handlesFinalized *prometheus.CounterVec

	nativeCalls  *prometheus.CounterVec
	nativeErrors *prometheus.CounterVec
}

// NewCollector creates a collector registered on its own registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "cbwallet"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.handlesLive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "handle",
			Name:      "live",
			Help:      "Native handles currently owned by a wrapper",
		},
		[]string{"kind"},
	)
	c.handlesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handle",
			Name:      "created_total",
			Help:      "Native handles adopted by a wrapper",
		},
		[]string{"kind"},
	)
	c.handlesDestroyed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handle",
			Name:      "destroyed_total",
			Help:      "Native destroy calls issued",
		},
		[]string{"kind"},
	)
	c.handlesFinalized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "handle",
			Name:      "finalized_total",
			Help:      "Handles released by the finalizer instead of Close",
		},
		[]string{"kind"},
	)
	c.nativeCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "native",
			Name:      "calls_total",
			Help:      "Fallible native calls by C function",
		},
		[]string{"function"},
	)
	c.nativeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "native",
			Name:      "errors_total",
			Help:      "Native calls that reported a non-zero error code",
		},
		[]string{"function", "code", "kind"},
	)

	c.registry.MustRegister(
		c.handlesLive,
		c.handlesCreated,
		c.handlesDestroyed,
		c.handlesFinalized,
		c.nativeCalls,
		c.nativeErrors,
	)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// HandleCreated records a handle adopted by a wrapper.
func (c *Collector) HandleCreated(kind string) {
	if c == nil {
		return
	}
	c.handlesCreated.WithLabelValues(kind).Inc()
	c.handlesLive.WithLabelValues(kind).Inc()
}

// HandleDestroyed records a native destroy call.
func (c *Collector) HandleDestroyed(kind string) {
	if c == nil {
		return
	}
	c.handlesDestroyed.WithLabelValues(kind).Inc()
	c.handlesLive.WithLabelValues(kind).Dec()
}

// HandleFinalized records a handle the finalizer had to release.
func (c *Collector) HandleFinalized(kind string) {
	if c == nil {
		return
	}
	c.handlesFinalized.WithLabelValues(kind).Inc()
}

// NativeCall records the outcome of one fallible native call. kind is the
// symbolic name of code and is ignored on success.
func (c *Collector) NativeCall(function string, code int32, kind string) {
	if c == nil {
		return
	}
	c.nativeCalls.WithLabelValues(function).Inc()
	if code != 0 {
		c.nativeErrors.WithLabelValues(function, strconv.FormatInt(int64(code), 10), kind).Inc()
	}
}
