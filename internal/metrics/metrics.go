// Package metrics exposes Prometheus collectors for the snake arena.
// Label values are bounded: only end reasons are used as labels.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every arena metric on its own registry.
// It implements the simulation's metrics recorder.
type Collector struct {
	registry *prometheus.Registry

	turns          prometheus.Counter
	apples         prometheus.Counter
	eliminations   prometheus.Counter
	matches        *prometheus.CounterVec
	matchTurns     prometheus.Histogram
	sessionsActive prometheus.Gauge
}

// New creates a collector with a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		turns: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_turns_total",
			Help: "Total turns played in live matches",
		}),
		apples: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_apples_eaten_total",
			Help: "Total apples consumed",
		}),
		eliminations: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_eliminations_total",
			Help: "Total snakes eliminated",
		}),
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "snake_matches_finished_total",
			Help: "Finished matches by end reason",
		}, []string{"reason"}), // Bounded: "eliminated", "board_full", "aborted"
		matchTurns: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "snake_match_turns",
			Help:    "Turns played per finished match",
			Buckets: prometheus.ExponentialBuckets(8, 2, 8),
		}),
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "snake_sessions_active",
			Help: "Currently connected terminal sessions",
		}),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) TurnPlayed()       { c.turns.Inc() }
func (c *Collector) AppleEaten()       { c.apples.Inc() }
func (c *Collector) PlayerEliminated() { c.eliminations.Inc() }

// MatchFinished counts a finished match and observes its length.
func (c *Collector) MatchFinished(reason string, turns int) {
	c.matches.WithLabelValues(reason).Inc()
	c.matchTurns.Observe(float64(turns))
}

// SessionStarted tracks a connected terminal.
func (c *Collector) SessionStarted() { c.sessionsActive.Inc() }

// SessionEnded tracks a disconnected terminal.
func (c *Collector) SessionEnded() { c.sessionsActive.Dec() }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
