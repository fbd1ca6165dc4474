// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes the Prometheus instruments for the write path.
//
// Two counters matter operationally: how often API writes are rejected by
// record validation, and how generic reference lookups end (hit, miss, error).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/netinv/internal/platform/apperr"
)

// Validation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Lookup outcomes.
const (
	LookupFound    = "found"
	LookupMissing  = "missing"
	LookupError    = "error"
	LookupCacheHit = "cache_hit"
)

// Metrics owns a dedicated registry so tests never collide with the global one.
type Metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	lookups     *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netinv",
			Subsystem: "serializer",
			Name:      "validations_total",
			Help:      "Validated serializer passes by model and outcome.",
		}, []string{"model", "outcome"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "netinv",
			Name:      "object_lookups_total",
			Help:      "Generic reference lookups by content type and outcome.",
		}, []string{"content_type", "outcome"}),
	}

	registry.MustRegister(m.validations, m.lookups)
	return m
}

// ObserveValidation records the outcome of one serializer validation pass.
func (m *Metrics) ObserveValidation(model string, err error) {
	outcome := OutcomeOK
	switch {
	case err == nil:
	case apperr.IsValidation(err):
		outcome = OutcomeInvalid
	default:
		outcome = OutcomeError
	}
	m.validations.WithLabelValues(model, outcome).Inc()
}

// ObserveLookup records the outcome of one generic reference lookup.
func (m *Metrics) ObserveLookup(contentType, outcome string) {
	m.lookups.WithLabelValues(contentType, outcome).Inc()
}

// Registry returns the underlying registry (used by tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
