// Package metrics exposes Prometheus collectors for the ledger server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/ledger"
	"github.com/mmynk/messledger/internal/period"
)

const namespace = "messledger"

// Source is the ledger view the gauges read from.
type Source interface {
	Snapshot() ledger.Snapshot
	Settlement(p period.Period, filter *period.Period) calculator.Report
}

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests   *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
	recordChanges *prometheus.CounterVec
}

var _ ledger.Observer = (*Metrics)(nil)

// New registers RPC and record collectors plus gauges computed from src for
// the current month. now is consulted on every scrape.
func New(src Source, now func() time.Time) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		recordChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_changes_total",
			Help:      "Committed record mutations by kind and action.",
		}, []string{"kind", "action"}),
	}

	current := func() calculator.Report {
		p := period.Current(now())
		return src.Settlement(p, &p)
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.recordChanges,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Records currently held by the store.",
		}, func() float64 { return float64(src.Snapshot().RecordCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members",
			Help:      "Current house members.",
		}, func() float64 { return float64(len(src.Snapshot().Members)) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "meal_rate",
			Help:      "Cost per meal for the current month.",
		}, func() float64 { return current().MealRate }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_due",
			Help:      "Outstanding dues for the current month.",
		}, func() float64 { return current().TotalDue }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members_due",
			Help:      "Members with dues for the current month.",
		}, func() float64 { return float64(current().DueCount()) }),
	)

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// RecordChanged implements ledger.Observer.
func (m *Metrics) RecordChanged(_ context.Context, c ledger.Change) {
	m.recordChanges.WithLabelValues(string(c.Kind), string(c.Action)).Inc()
}
