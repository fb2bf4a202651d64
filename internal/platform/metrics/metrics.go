// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes the Prometheus instruments of the Shelf API.
//
// All recording methods are safe to call on a nil [*Metrics], so components
// can be constructed without instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus instruments.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Auth metrics
	TokenRejectionsTotal *prometheus.CounterVec
	LoginAttemptsTotal   *prometheus.CounterVec

	// Cache metrics
	CacheRequestsTotal *prometheus.CounterVec
}

// New creates all instruments and registers them with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		TokenRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_auth_token_rejections_total",
				Help: "Requests rejected by bearer authentication, by reason",
			},
			[]string{"reason"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_auth_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		CacheRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_cache_requests_total",
				Help: "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
	}

	registerer.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TokenRejectionsTotal,
		m.LoginAttemptsTotal,
		m.CacheRequestsTotal,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one finished request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTokenRejection counts a request rejected by bearer authentication.
func (m *Metrics) RecordTokenRejection(reason string) {
	if m == nil {
		return
	}
	m.TokenRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordLogin counts a login attempt ("success", "rejected" or "error").
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordCache counts a cache lookup ("hit", "miss" or "error").
func (m *Metrics) RecordCache(cache, result string) {
	if m == nil {
		return
	}
	m.CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}
