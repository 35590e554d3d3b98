package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cuemby/fdbexporter/pkg/log"
	"github.com/rs/zerolog"
)

// Readiness is implemented by the collector
type Readiness interface {
	Ready() bool
	LastSuccess() time.Time
}

// Server serves /metrics, /health and /ready
type Server struct {
	mux     *http.ServeMux
	ready   Readiness
	version string
	started time.Time
	logger  zerolog.Logger
}

// NewServer creates the exporter HTTP server. metrics is usually
// Registry.Handler().
func NewServer(metrics http.Handler, ready Readiness, version string) *Server {
	mux := http.NewServeMux()
	s := &Server{
		mux:     mux,
		ready:   ready,
		version: version,
		started: time.Now(),
		logger:  log.WithComponent("api"),
	}

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/ready", s.readyHandler)
	mux.Handle("/metrics", metrics)

	return s
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Serving metrics")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Checks      map[string]string `json:"checks"`
	LastSuccess *time.Time        `json:"last_success,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// healthHandler is a liveness check: 200 while the process serves requests
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

// readyHandler returns 200 once a scrape has succeeded, 503 before
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := ReadyResponse{
		Status:    "not ready",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}
	statusCode := http.StatusServiceUnavailable

	switch {
	case s.ready == nil:
		response.Checks["collector"] = "not initialized"
		response.Message = "Collector not initialized"
	case !s.ready.Ready():
		response.Checks["collector"] = "no successful scrape"
		response.Message = "Waiting for the first status document"
	default:
		last := s.ready.LastSuccess()
		response.Status = "ready"
		response.Checks["collector"] = "ok"
		response.LastSuccess = &last
		statusCode = http.StatusOK
	}

	writeJSON(w, statusCode, response)
}

// Handler returns the HTTP handler for embedding in other servers
func (s *Server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
