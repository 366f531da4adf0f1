// Package metrics exposes Prometheus metrics for catalog loads, updates and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pokedex"

// Result label values.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"
)

// Collector owns a private registry so several instances can coexist in tests.
// All methods are safe to call on a nil *Collector.
type Collector struct {
	registry *prometheus.Registry

	loads        *prometheus.CounterVec
	rowsSkipped  prometheus.Counter
	records      *prometheus.GaugeVec
	owned        *prometheus.GaugeVec
	lastLoad     prometheus.Gauge
	updates      *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a Collector with Go runtime and process collectors registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog loads by trigger and result.",
		}, []string{"trigger", "result"}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_rows_skipped_total",
			Help:      "Source rows dropped during loads.",
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_records",
			Help:      "Records held per generation.",
		}, []string{"generation"}),
		owned: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_owned_records",
			Help:      "Records marked as collected per generation.",
		}, []string{"generation"}),
		lastLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_updates_total",
			Help:      "Ownership updates by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.loads,
		c.rowsSkipped,
		c.records,
		c.owned,
		c.lastLoad,
		c.updates,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Registry returns the underlying registry.
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
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveLoad records the outcome of one catalog load.
func (c *Collector) ObserveLoad(trigger string, err error, skipped int) {
	if c == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	c.loads.WithLabelValues(trigger, result).Inc()
	if skipped > 0 {
		c.rowsSkipped.Add(float64(skipped))
	}
	if err == nil {
		c.lastLoad.SetToCurrentTime()
	}
}

// SetGeneration sets the record and owned gauges of one generation.
func (c *Collector) SetGeneration(key, records, owned int) {
	if c == nil {
		return
	}
	label := strconv.Itoa(key)
	c.records.WithLabelValues(label).Set(float64(records))
	c.owned.WithLabelValues(label).Set(float64(owned))
}

// AdjustOwned moves the owned gauge of a generation by delta.
func (c *Collector) AdjustOwned(key, delta int) {
	if c == nil || delta == 0 {
		return
	}
	c.owned.WithLabelValues(strconv.Itoa(key)).Add(float64(delta))
}

// ObserveUpdate counts one ownership update.
func (c *Collector) ObserveUpdate(result string) {
	if c == nil {
		return
	}
	c.updates.WithLabelValues(result).Inc()
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
