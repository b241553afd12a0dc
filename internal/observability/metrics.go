package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

// MetricsConfig controls the in-process Prometheus registry.
type MetricsConfig struct {
	Enabled bool
	Addr    string
	// ScrapeInterval is how often the pool and Redis collectors sample.
	ScrapeInterval time.Duration
	// LatencyThreshold splits API requests into good and slow for the SLO counters.
	LatencyThreshold time.Duration
}

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter
	apiReqGood  *Counter

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRollbacks *CounterVec

	securityEvents *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	scrapeInterval   time.Duration
	latencyThreshold float64
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Current returns the process-wide registry, or nil when metrics are off.
func Current() *Metrics {
	return instance
}

// Init builds the process-wide registry once. It returns nil when disabled so
// callers can pass the result around and rely on the nil-safe methods.
func Init(log *logger.Logger, cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = New(cfg)
		if log != nil {
			log.Info("Observability metrics enabled", "addr", cfg.Addr)
		}
	})
	return instance
}

// New builds an independent registry.
func New(cfg MetricsConfig) *Metrics {
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	threshold := cfg.LatencyThreshold
	if threshold <= 0 {
		threshold = 500 * time.Millisecond
	}
	return &Metrics{
		apiRequests: NewCounterVec("personnel_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"personnel_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("personnel_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("personnel_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("personnel_api_requests_error_total", "API requests answered with a 5xx status."),
		apiReqGood:  NewCounter("personnel_api_requests_good_total", "API requests served within the latency threshold."),

		aggregateOps: NewCounterVec("personnel_aggregate_operations_total", "Aggregate write operations by name/status.", []string{"aggregate_op", "status"}),
		aggregateLatency: NewHistogramVec(
			"personnel_aggregate_operation_duration_seconds",
			"Aggregate write latency in seconds by name/status.",
			[]string{"aggregate_op", "status"},
			[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		),
		aggregateConflicts: NewCounterVec("personnel_aggregate_conflicts_total", "Aggregate writes rejected by a uniqueness constraint.", []string{"aggregate_op"}),
		aggregateRollbacks: NewCounterVec("personnel_aggregate_rollbacks_total", "Aggregate transactions rolled back.", []string{"aggregate_op"}),

		securityEvents: NewCounterVec("personnel_security_events_total", "Authentication events by kind.", []string{"event"}),

		dbStats:   NewGaugeVec("personnel_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:   NewGauge("personnel_redis_up", "1 when the last Redis ping succeeded."),
		redisPing: NewGauge("personnel_redis_ping_seconds", "Latency of the last successful Redis ping."),

		scrapeInterval:   interval,
		latencyThreshold: threshold.Seconds(),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.apiReqTotal, m.apiReqError, m.apiReqGood,
		m.aggregateOps, m.aggregateLatency,
		m.aggregateConflicts, m.aggregateRollbacks,
		m.securityEvents,
		m.dbStats, m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
	if dur.Seconds() <= m.latencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.aggregateOps.Inc(name, status)
	m.aggregateLatency.Observe(dur.Seconds(), name, status)
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.Inc(name)
}

func (m *Metrics) IncAggregateRollback(name string) {
	if m == nil {
		return
	}
	m.aggregateRollbacks.Inc(name)
}

// IncSecurityEvent counts login failures, rejected tokens and the like.
func (m *Metrics) IncSecurityEvent(event string) {
	if m == nil {
		return
	}
	event = strings.TrimSpace(event)
	if event == "" {
		event = "unknown"
	}
	m.securityEvents.Inc(event)
}
