package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	AppointmentEvents     *prometheus.CounterVec
	AppointmentRejections *prometheus.CounterVec
	Notifications         *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		HTTPRequestsInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		}, []string{"service"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		AppointmentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_events_total",
			Help: "Appointment lifecycle events (created, cancelled)",
		}, []string{"service", "event"}),

		AppointmentRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_rejections_total",
			Help: "Rejected booking and cancellation attempts by reason",
		}, []string{"service", "reason"}),

		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification dispatch results by channel",
		}, []string{"service", "channel", "result"}),
	}
}

// ServiceName возвращает имя сервиса, которым помечены метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// InFlight изменяет счетчик запросов в обработке
func (m *Metrics) InFlight(delta float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.WithLabelValues(m.serviceName).Add(delta)
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.DBConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.DBConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
	m.DBConnections.WithLabelValues(m.serviceName, "wait_count").Set(float64(stats.WaitCount))
}

// RecordAppointmentEvent фиксирует событие жизненного цикла записи
func (m *Metrics) RecordAppointmentEvent(event string) {
	if m == nil {
		return
	}
	m.AppointmentEvents.WithLabelValues(m.serviceName, event).Inc()
}

// RecordRejection фиксирует отказ с указанием причины
func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.AppointmentRejections.WithLabelValues(m.serviceName, reason).Inc()
}

// RecordNotification фиксирует результат отправки уведомления
func (m *Metrics) RecordNotification(channel, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(m.serviceName, channel, result).Inc()
}
