// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/shelf/internal/platform/ctxutil"
	"github.com/taibuivan/shelf/internal/platform/metrics"
	"github.com/taibuivan/shelf/internal/platform/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// Generated when absent
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	// Propagated when provided
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "req-123")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", recorder.Header().Get("X-Request-ID"))
}

/*
TestStructuredLogger verifies the request logger is injected and the final entry carries the status.
*/
func TestStructuredLogger(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))

	var injected *slog.Logger
	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context())
		writer.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/books", nil))

	assert.NotNil(t, injected)
	assert.NotSame(t, slog.Default(), injected)
	assert.Contains(t, logs.String(), "http_request_finished")
	assert.Contains(t, logs.String(), `"status":418`)
	assert.Contains(t, logs.String(), `"path":"/api/books"`)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	logs := &bytes.Buffer{}
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithLogger(request.Context(), slog.New(slog.NewJSONHandler(logs, nil))))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() { handler.ServeHTTP(recorder, request) })
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, logs.String(), "panic_recovered")
}

/*
TestRateLimiter lets the burst through and rejects the next request from the same client only.
*/
func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := limiter.Handler(okHandler())

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = ip + ":40000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	rejected := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.NotEmpty(t, rejected.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development_any_origin", corsConfig{development: true}, "http://localhost:3000", true},
		{"production_listed_origin", corsConfig{origins: []string{"https://shelf.example"}}, "https://shelf.example", true},
		{"production_unlisted_origin", corsConfig{origins: []string{"https://shelf.example"}}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(tt.cfg)(okHandler())

			request := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(middleware.Instrument(m))
	router.Get("/api/books/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/books/42", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/books/{id}", "404")))
}

func TestExposeInternals(t *testing.T) {
	var exposed bool
	handler := middleware.ExposeInternals(true)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		exposed = ctxutil.ExposeInternals(request.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, exposed)
}

/*
TestResolveClientIP believes proxy headers only when the peer is a trusted proxy.
*/
func TestResolveClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name      string
		peer      string
		realIP    string
		forwarded string
		trusted   []netip.Prefix
		want      string
	}{
		{"untrusted_peer_ignores_real_ip", "192.0.2.7:5555", "198.51.100.4", "", trusted, "192.0.2.7"},
		{"untrusted_peer_ignores_forwarded", "192.0.2.7:5555", "", "203.0.113.9", trusted, "192.0.2.7"},
		{"no_trusted_prefixes", "10.0.0.1:5555", "198.51.100.4", "", nil, "10.0.0.1"},
		{"trusted_peer_real_ip", "10.0.0.1:5555", "198.51.100.4", "203.0.113.9", trusted, "198.51.100.4"},
		{"trusted_peer_forwarded", "10.0.0.1:5555", "", "203.0.113.9", trusted, "203.0.113.9"},
		{"forwarded_skips_trusted_hops", "10.0.0.1:5555", "", "1.1.1.1, 203.0.113.9, 10.0.0.2", trusted, "203.0.113.9"},
		{"forwarded_all_trusted", "10.0.0.1:5555", "", "10.0.0.3, 10.0.0.2", trusted, "10.0.0.3"},
		{"garbage_headers_fall_back_to_peer", "10.0.0.1:5555", "not-an-ip", "also-not", trusted, "10.0.0.1"},
		{"ipv4_mapped_peer", "[::ffff:10.0.0.1]:5555", "198.51.100.4", "", trusted, "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.peer
			if tt.realIP != "" {
				request.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				request.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.want, middleware.ResolveClientIP(request, tt.trusted))
		})
	}
}

/*
TestRateLimiter_SpoofedHeadersShareBucket keeps a direct client in one bucket
however it rotates X-Real-IP and X-Forwarded-For.
*/
func TestRateLimiter_SpoofedHeadersShareBucket(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(ctx, 0.001, 2)
	handler := middleware.ClientIP(nil)(limiter.Handler(okHandler()))

	codes := make([]int, 0, 3)
	for i := range 3 {
		request := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		request.RemoteAddr = "192.0.2.50:40000"
		request.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i))
		request.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.7:5555"
	request.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "192.0.2.7", middleware.RealIP(request))

	request = request.WithContext(ctxutil.WithClientIP(request.Context(), "203.0.113.9"))
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))
}
