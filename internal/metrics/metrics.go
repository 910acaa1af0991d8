// Package metrics exposes Prometheus instrumentation and a health
// endpoint for the long-running signal service.
package metrics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BarsLoaded counts bars ingested from storage per analysis cycle.
	BarsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_bars_loaded_total",
		Help: "Total daily bars loaded from storage",
	})

	// AnalysesTotal counts completed analysis cycles by status.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signal_analyses_total",
		Help: "Total analysis cycles by status",
	}, []string{"status"})

	// AnalyzeDuration tracks how long one full analysis cycle takes.
	AnalyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "signal_analyze_duration_seconds",
		Help:    "Duration of one analysis cycle",
		Buckets: prometheus.DefBuckets,
	})

	// PublishErrors counts failed Redis publishes.
	PublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signal_publish_errors_total",
		Help: "Total failed signal publishes",
	})

	// CompositeScore holds the last computed net score per symbol.
	CompositeScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "signal_composite_score",
		Help: "Last computed composite net score",
	}, []string{"symbol"})

	// BreakerState reflects the Redis circuit breaker (0 closed, 1 open,
	// 2 half-open).
	BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signal_redis_breaker_state",
		Help: "Redis circuit breaker state (0=closed, 1=open, 2=half-open)",
	})
)

// HealthStatus aggregates dependency checks for /healthz.
type HealthStatus struct {
	mu     sync.RWMutex
	checks map[string]func(context.Context) error
}

// NewHealthStatus creates an empty health registry.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{checks: make(map[string]func(context.Context) error)}
}

// Register adds a named dependency check.
func (h *HealthStatus) Register(name string, check func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *HealthStatus) handler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	h.mu.RLock()
	defer h.mu.RUnlock()

	healthy := true
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			results[name] = err.Error()
		} else {
			results[name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(results)
}

// Server serves /metrics and /healthz.
type Server struct {
	srv *http.Server
}

// NewServer builds an HTTP server on addr with the Prometheus handler
// and the given health registry mounted.
func NewServer(addr string, health *HealthStatus) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", health.handler)

	return &Server{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Start serves in a background goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[metrics] serving on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
