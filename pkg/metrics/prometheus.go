package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metric container for a RobMCF solve.
type Metrics struct {
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec

	RoundsExecutedTotal  *prometheus.HistogramVec
	TokensDeliveredTotal *prometheus.CounterVec
	SlackUsedTotal       *prometheus.CounterVec
	ProxyReleasesTotal   *prometheus.CounterVec

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics registers and returns the package's Prometheus collectors
// under the given namespace/subsystem.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of solve operations, by outcome",
			},
			[]string{"status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of a full solve, across every scenario",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"status"},
		),

		RoundsExecutedTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rounds_executed",
				Help:      "Number of scheduler rounds a solve ran before every scenario drained",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"status"},
		),

		TokensDeliveredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tokens_delivered_total",
				Help:      "Total supply tokens delivered to their destination, by scenario",
			},
			[]string{"scenario"},
		),

		SlackUsedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "slack_used_total",
				Help:      "Total slack budget spent on inconsistent fixed-arc releases, by scenario",
			},
			[]string{"scenario"},
		),

		ProxyReleasesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "proxy_releases_total",
				Help:      "Fixed-arc proxy queue releases, by kind (consistent or inconsistent)",
			},
			[]string{"kind"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-global Metrics, initializing a default instance
// under the "robmcf" namespace if InitMetrics has not run yet.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("robmcf", "")
	}
	return defaultMetrics
}

// RecordSolveOperation records one full solve's outcome and duration.
func (m *Metrics) RecordSolveOperation(success bool, duration time.Duration, rounds int) {
	status := "success"
	if !success {
		status = "error"
	}

	m.SolveOperationsTotal.WithLabelValues(status).Inc()
	m.SolveDuration.WithLabelValues(status).Observe(duration.Seconds())
	m.RoundsExecutedTotal.WithLabelValues(status).Observe(float64(rounds))
}

// RecordTokenDelivered records one scenario's token reaching its destination.
func (m *Metrics) RecordTokenDelivered(scenario int) {
	m.TokensDeliveredTotal.WithLabelValues(strconv.Itoa(scenario)).Inc()
}

// RecordSlackUsed records a scenario spending n units of slack on an
// inconsistent fixed-arc release.
func (m *Metrics) RecordSlackUsed(scenario int, n uint64) {
	m.SlackUsedTotal.WithLabelValues(strconv.Itoa(scenario)).Add(float64(n))
}

// RecordProxyRelease records a fixed-arc proxy queue drain, tagged by
// whether it was a consistent (cross-scenario agreed) or inconsistent
// (slack-charged) release.
func (m *Metrics) RecordProxyRelease(consistent bool, n int) {
	kind := "inconsistent"
	if consistent {
		kind = "consistent"
	}
	m.ProxyReleasesTotal.WithLabelValues(kind).Add(float64(n))
}

// SetServiceInfo sets the build-info gauge to 1 for the given labels.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler that serves /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer runs a blocking HTTP server exposing /metrics and
// /health on port.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
