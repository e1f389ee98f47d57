// Package metrics exposes Prometheus counters and histograms for the
// command pipeline on an internal-only HTTP listener.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"redis/internal/config"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_commands_total",
		Help: "Total commands processed, by command name and outcome",
	}, []string{"command", "outcome"}) // outcome: "ok" or "error"

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "redis_command_duration_seconds",
		Help:    "Command execution latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"command"})

	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "redis_connections_active",
		Help: "Currently open client connections",
	})

	connectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_connections_rejected_total",
		Help: "Connections rejected before being served",
	}, []string{"reason"}) // reason: "max_connections", "rate_limit"

	sortedListEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "redis_sorted_list_entries",
		Help: "Total entries across all sorted list keys at last cleanup tick",
	})

	keysExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "redis_keys_expired_total",
		Help: "Keys removed by the active expiry sweep (lazy removal on access is not counted)",
	})
)

// RecordCommand records a single command's outcome and latency.
func RecordCommand(name string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	commandsTotal.WithLabelValues(name, outcome).Inc()
	commandDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// SetActiveConnections sets the active connection gauge.
func SetActiveConnections(n int) {
	connectionsActive.Set(float64(n))
}

// RecordConnectionRejected increments the rejection counter for reason.
func RecordConnectionRejected(reason string) {
	connectionsRejected.WithLabelValues(reason).Inc()
}

// SetSortedListEntries sets the aggregate sorted list entry gauge.
func SetSortedListEntries(n int) {
	sortedListEntries.Set(float64(n))
}

// RecordKeyExpired increments the expired-keys counter.
func RecordKeyExpired() {
	keysExpired.Inc()
}

// Start launches the metrics HTTP listener in a background goroutine.
// It is a no-op if cfg.Enabled is false. The listener MUST stay on
// localhost; this is not a public-facing surface.
func Start(cfg config.MetricsConfig) {
	if !cfg.Enabled {
		log.Println("metrics listener disabled")
		return
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("metrics listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
			log.Printf("metrics listener error: %v", err)
		}
	}()
}
