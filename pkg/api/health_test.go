package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/fdbexporter/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadiness struct {
	last time.Time
}

func (f *fakeReadiness) Ready() bool            { return !f.last.IsZero() }
func (f *fakeReadiness) LastSuccess() time.Time { return f.last }

func newTestServer(ready Readiness) (*Server, *metrics.Registry) {
	reg := metrics.NewRegistry()
	return NewServer(reg.Handler(), ready, "test"), reg
}

// TestHealthHandler tests the /health endpoint
func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(nil)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{
			name:           "GET request succeeds",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST request fails",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "DELETE request fails",
			method:         http.MethodDelete,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/health", nil)
			w := httptest.NewRecorder()

			s.healthHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

				var response HealthResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, "healthy", response.Status)
				assert.Equal(t, "test", response.Version)
				assert.False(t, response.Timestamp.IsZero())
				assert.NotEmpty(t, response.Uptime)
			}
		})
	}
}

// TestReadyHandler tests readiness before and after the first scrape
func TestReadyHandler(t *testing.T) {
	last := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		ready          Readiness
		expectedStatus int
		expectedCheck  string
	}{
		{
			name:           "no collector",
			ready:          nil,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCheck:  "not initialized",
		},
		{
			name:           "no scrape yet",
			ready:          &fakeReadiness{},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCheck:  "no successful scrape",
		},
		{
			name:           "scraped",
			ready:          &fakeReadiness{last: last},
			expectedStatus: http.StatusOK,
			expectedCheck:  "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(tt.ready)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()
			s.readyHandler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ReadyResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedCheck, response.Checks["collector"])
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "ready", response.Status)
				require.NotNil(t, response.LastSuccess)
				assert.True(t, last.Equal(*response.LastSuccess))
			} else {
				assert.Equal(t, "not ready", response.Status)
				assert.NotEmpty(t, response.Message)
			}
		})
	}
}

// TestReadyHandlerMethodValidation tests readiness endpoint HTTP method validation
func TestReadyHandlerMethodValidation(t *testing.T) {
	s, _ := newTestServer(&fakeReadiness{last: time.Now()})

	req := httptest.NewRequest(http.MethodPost, "/ready", nil)
	w := httptest.NewRecorder()
	s.readyHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

// TestMetricsEndpoint tests the Prometheus exposition through the mux
func TestMetricsEndpoint(t *testing.T) {
	s, reg := newTestServer(nil)
	reg.Gauge("fdb_cluster_total_kv_size_bytes", "Logical size of all key-value pairs in bytes").Set(42)
	reg.Family("fdb_client_coordinator_reachable", "Whether the coordinator is reachable", "address").
		With("10.0.0.1:4500:tls").Set(1)

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "# HELP fdb_cluster_total_kv_size_bytes Logical size of all key-value pairs in bytes")
	assert.Contains(t, text, "# TYPE fdb_cluster_total_kv_size_bytes gauge")
	assert.Contains(t, text, "fdb_cluster_total_kv_size_bytes 42\n")
	assert.Contains(t, text, `fdb_client_coordinator_reachable{address="10.0.0.1:4500:tls"} 1`)
}

// TestRunShutdown tests that Run returns once its context is cancelled
func TestRunShutdown(t *testing.T) {
	s, _ := newTestServer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// TestRunListenError tests that a bad address is reported
func TestRunListenError(t *testing.T) {
	s, _ := newTestServer(nil)

	err := s.Run(context.Background(), "256.0.0.1:bad")
	assert.Error(t, err)
}
