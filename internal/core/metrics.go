// AngelaMos | 2026
// metrics.go

package core

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "petshop"

// Metrics owns a private Prometheus registry with the HTTP and domain
// collectors. Services take it as an optional dependency; a nil *Metrics
// records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge

	OrdersCreated       prometheus.Counter
	OrderLinesSkipped   prometheus.Counter
	AppointmentsBooked  prometheus.Counter
	LoginAttempts       *prometheus.CounterVec
	ContactMessages     prometheus.Counter
	SessionsInvalidated prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),

		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "orders_created_total",
			Help:      "Orders persisted.",
		}),
		OrderLinesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "order_lines_skipped_total",
			Help:      "Cart lines dropped because the product no longer exists.",
		}),
		AppointmentsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "appointments_booked_total",
			Help:      "Appointments persisted.",
		}),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "login_attempts_total",
				Help:      "Login attempts by outcome.",
			},
			[]string{"result"},
		),
		ContactMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "contact_messages_total",
			Help:      "Contact messages received.",
		}),
		SessionsInvalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_invalidated_total",
			Help:      "Session cookies presented that no longer resolve.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestDuration,
		m.RequestTotal,
		m.RequestInFlight,
		m.OrdersCreated,
		m.OrderLinesSkipped,
		m.AppointmentsBooked,
		m.LoginAttempts,
		m.ContactMessages,
		m.SessionsInvalidated,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

func (m *Metrics) IncOrdersCreated() {
	if m != nil {
		m.OrdersCreated.Inc()
	}
}

func (m *Metrics) AddOrderLinesSkipped(n int) {
	if m != nil && n > 0 {
		m.OrderLinesSkipped.Add(float64(n))
	}
}

func (m *Metrics) IncAppointmentsBooked() {
	if m != nil {
		m.AppointmentsBooked.Inc()
	}
}

func (m *Metrics) ObserveLogin(result string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncContactMessages() {
	if m != nil {
		m.ContactMessages.Inc()
	}
}

func (m *Metrics) IncSessionsInvalidated() {
	if m != nil {
		m.SessionsInvalidated.Inc()
	}
}
