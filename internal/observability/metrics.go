// Package observability exposes Prometheus metrics and OpenTelemetry tracing
// for the content service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"elevate-backend/internal/domain"
	appErrors "elevate-backend/internal/errors"
)

// Collector holds all Prometheus metrics for the service. Each collector owns
// its registry, so tests can create as many as they need.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Remote store metrics
	RemoteOperations *prometheus.CounterVec
	RemoteDuration   *prometheus.HistogramVec

	// Content store metrics
	ContentLoads     *prometheus.CounterVec
	ContentRollbacks *prometheus.CounterVec

	// Media metrics
	MediaUploads *prometheus.CounterVec
}

// NewCollector creates a collector with the given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RemoteOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "remote_operations_total",
				Help:      "Total number of remote store operations",
			},
			[]string{"operation", "table", "status"},
		),
		RemoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "remote_operation_duration_seconds",
				Help:      "Remote store operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		ContentLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "content_loads_total",
				Help:      "Content kinds loaded at bootstrap, by source",
			},
			[]string{"kind", "source"},
		),
		ContentRollbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "content_rollbacks_total",
				Help:      "Optimistic mutations rolled back after a remote failure",
			},
			[]string{"kind"},
		),
		MediaUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "media_uploads_total",
				Help:      "Media uploads by outcome",
			},
			[]string{"folder", "status"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.RemoteOperations,
		c.RemoteDuration,
		c.ContentLoads,
		c.ContentRollbacks,
		c.MediaUploads,
	)
	return c
}

// RecordRemoteOperation implements repository.OperationRecorder.
func (c *Collector) RecordRemoteOperation(operation, table string, err error, duration time.Duration) {
	c.RemoteOperations.WithLabelValues(operation, table, status(err)).Inc()
	c.RemoteDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordLoad implements content.Recorder.
func (c *Collector) RecordLoad(kind domain.Kind, source string) {
	c.ContentLoads.WithLabelValues(kind.String(), source).Inc()
}

// RecordRollback implements content.Recorder.
func (c *Collector) RecordRollback(kind domain.Kind) {
	c.ContentRollbacks.WithLabelValues(kind.String()).Inc()
}

// RecordUpload counts one media upload attempt.
func (c *Collector) RecordUpload(folder string, err error) {
	c.MediaUploads.WithLabelValues(folder, status(err)).Inc()
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// status labels an outcome for the status dimension.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	switch appErrors.TypeOf(err) {
	case appErrors.ErrorTypeTimeout:
		return "timeout"
	case appErrors.ErrorTypeCircuitOpen:
		return "circuit_open"
	case appErrors.ErrorTypeValidation:
		return "invalid"
	}
	return "error"
}
