package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	sessionsStarted   prometheus.Counter
	bookingsCreated   *prometheus.CounterVec
	reconcileOutcomes *prometheus.CounterVec
	slotFetchDegraded prometheus.Counter
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "wizard_sessions_started_total",
			Help:        "Total number of wizard sessions created",
			ConstLabels: labels,
		}),

		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_bookings_created_total",
			Help:        "Total number of bookings created through the wizard",
			ConstLabels: labels,
		}, []string{"path"}), // guest | authenticated

		reconcileOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "wizard_account_reconciliations_total",
			Help:        "Account reconciliation outcomes",
			ConstLabels: labels,
		}, []string{"outcome"}), // registered | logged_in | guest

		slotFetchDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "wizard_slot_fetch_degraded_total",
			Help:        "Slot feed fetches that degraded to an empty list",
			ConstLabels: labels,
		}),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.sessionsStarted,
		m.bookingsCreated,
		m.reconcileOutcomes,
		m.slotFetchDegraded,
	)

	return m
}

// ObserveRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncSessionsStarted фиксирует создание сессии мастера
func (m *Metrics) IncSessionsStarted() {
	m.sessionsStarted.Inc()
}

// IncBookingCreated фиксирует успешное создание бронирования (path: guest | authenticated)
func (m *Metrics) IncBookingCreated(path string) {
	m.bookingsCreated.WithLabelValues(path).Inc()
}

// IncReconcileOutcome фиксирует исход сверки аккаунта
func (m *Metrics) IncReconcileOutcome(outcome string) {
	m.reconcileOutcomes.WithLabelValues(outcome).Inc()
}

// IncSlotFetchDegraded фиксирует деградацию загрузки слотов
func (m *Metrics) IncSlotFetchDegraded() {
	m.slotFetchDegraded.Inc()
}
