package infra

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors
type Metrics struct {
	BetsPlaced         prometheus.Counter
	BetsSettled        *prometheus.CounterVec
	SettlementFailures prometheus.Counter
	StatsCacheHits     prometheus.Counter
	StatsCacheMisses   prometheus.Counter
}

// NewMetrics registers and returns the application collectors
func NewMetrics() *Metrics {
	return &Metrics{
		BetsPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betanalytix_bets_placed_total",
			Help: "Number of bets successfully created.",
		}),
		BetsSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "betanalytix_bets_settled_total",
			Help: "Number of bets settled, by terminal status.",
		}, []string{"status"}),
		SettlementFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betanalytix_settlement_failures_total",
			Help: "Number of settlement attempts that failed.",
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betanalytix_stats_cache_hits_total",
			Help: "Bankroll stats served from cache.",
		}),
		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betanalytix_stats_cache_misses_total",
			Help: "Bankroll stats recomputed from the store.",
		}),
	}
}

// HealthFunc checks a dependency for the ops health endpoint
type HealthFunc func(ctx context.Context) error

// StartOpsServer starts a lightweight HTTP server serving /metrics and
// /healthz, separate from the API server. Runs in its own goroutine.
func StartOpsServer(port string, healthFn HealthFunc) *http.Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := healthFn(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(fmt.Sprintf("unhealthy: %v", err)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		_ = srv.ListenAndServe()
	}()

	return srv
}
