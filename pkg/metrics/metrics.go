package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	rateLimitRejected  prometheus.Counter
	rateLimitClients   prometheus.Gauge
	validationRejected *prometheus.CounterVec
	storageErrors      *prometheus.CounterVec
	dbQueryDuration    *prometheus.HistogramVec
	dbOpenConns        prometheus.Gauge
	dbInUseConns       prometheus.Gauge
	dbIdleConns        prometheus.Gauge
	dbWaitCount        prometheus.Gauge
}

// New создает и регистрирует коллекторы в переданном registerer
// В production передается prometheus.DefaultRegisterer, в тестах - prometheus.NewRegistry()
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rateLimitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "rate_limit_rejected_total",
			Help:        "Requests rejected by the rate limiter",
			ConstLabels: constLabels,
		}),
		rateLimitClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "rate_limit_tracked_clients",
			Help:        "Client addresses currently tracked by the rate limiter",
			ConstLabels: constLabels,
		}),
		validationRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "validation_rejected_total",
			Help:        "Requests rejected by payload validation",
			ConstLabels: constLabels,
		}, []string{"validator"}),
		storageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storage_errors_total",
			Help:        "Storage failures by normalized kind",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database statement latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: constLabels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.rateLimitRejected,
		m.rateLimitClients,
		m.validationRejected,
		m.storageErrors,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
	)

	return m
}

// Все методы безопасны для nil-ресивера: метрики могут быть выключены в конфиге

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) IncRateLimitRejected() {
	if m == nil {
		return
	}
	m.rateLimitRejected.Inc()
}

func (m *Metrics) SetRateLimitClients(n int) {
	if m == nil {
		return
	}
	m.rateLimitClients.Set(float64(n))
}

func (m *Metrics) IncValidationRejected(validator string) {
	if m == nil {
		return
	}
	m.validationRejected.WithLabelValues(validator).Inc()
}

func (m *Metrics) IncStorageError(kind string) {
	if m == nil {
		return
	}
	m.storageErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveDBQuery(operation string, failed bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(open))
	m.dbInUseConns.Set(float64(inUse))
	m.dbIdleConns.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}
