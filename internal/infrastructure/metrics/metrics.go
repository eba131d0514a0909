// Package metrics expõe as métricas Prometheus da API: requisições HTTP e movimentações do inventário.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics agrupa os coletores registrados em um Registry próprio.
type Metrics struct {
	Registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	movements *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// New cria e registra os coletores (incluindo os de processo e do runtime Go).
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por método, rota e status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_movements_total",
			Help:      "Movimentações aplicadas por tipo e ação.",
		}, []string{"kind", "action"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_movements_rejected_total",
			Help:      "Movimentações recusadas por tipo e motivo.",
		}, []string{"kind", "reason"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.movements, m.rejected,
	)
	return m
}

// ObserveRequest registra uma requisição concluída.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// MovementApplied implementa o observer do motor de inventário.
func (m *Metrics) MovementApplied(kind, action string) {
	m.movements.WithLabelValues(kind, action).Inc()
}

// MovementRejected implementa o observer do motor de inventário.
func (m *Metrics) MovementRejected(kind, reason string) {
	m.rejected.WithLabelValues(kind, reason).Inc()
}
