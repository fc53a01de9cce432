package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry         *prometheus.Registry
	Registrations    *prometheus.CounterVec
	Logins           *prometheus.CounterVec
	FeedbackOps      *prometheus.CounterVec
	AccountDeletions prometheus.Counter
}

// NewMetrics creates a new Metrics instance
func NewMetrics(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	registrations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "registrations_total",
			Help:      "Total number of registration attempts by result",
		},
		[]string{"result"},
	)

	logins := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "logins_total",
			Help:      "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	feedbackOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "feedback_operations_total",
			Help:      "Total number of successful feedback mutations by action",
		},
		[]string{"action"},
	)

	accountDeletions := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "account_deletions_total",
			Help:      "Total number of deleted accounts",
		},
	)

	registry.MustRegister(
		registrations,
		logins,
		feedbackOps,
		accountDeletions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		Registry:         registry,
		Registrations:    registrations,
		Logins:           logins,
		FeedbackOps:      feedbackOps,
		AccountDeletions: accountDeletions,
	}
}

func (m *Metrics) RegistrationAttempt(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) LoginAttempt(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) FeedbackOperation(action string) {
	if m == nil {
		return
	}
	m.FeedbackOps.WithLabelValues(action).Inc()
}

func (m *Metrics) AccountDeleted() {
	if m == nil {
		return
	}
	m.AccountDeletions.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
