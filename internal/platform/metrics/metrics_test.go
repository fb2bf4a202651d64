// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/internal/platform/metrics"
)

func TestMetrics_Record(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	m.RecordHTTPRequest(http.MethodGet, "/api/auth/me", http.StatusUnauthorized, 5*time.Millisecond)
	m.RecordTokenRejection("expired")
	m.RecordTokenRejection("expired")
	m.RecordLogin("rejected")
	m.RecordCache("book", "hit")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/auth/me", "401")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TokenRejectionsTotal.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequestsTotal.WithLabelValues("book", "hit")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.RecordTokenRejection("malformed")
		m.RecordLogin("success")
		m.RecordCache("book", "miss")
	})
}

func TestHandler_ServesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	m.RecordTokenRejection("malformed")

	recorder := httptest.NewRecorder()
	metrics.Handler(registry).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `shelf_auth_token_rejections_total{reason="malformed"} 1`)
}
