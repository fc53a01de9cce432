package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("test_service")

	m.RegistrationAttempt("success")
	m.RegistrationAttempt("success")
	m.RegistrationAttempt("conflict")
	m.LoginAttempt("failure")
	m.FeedbackOperation("add")
	m.AccountDeleted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedbackOps.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountDeletions))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RegistrationAttempt("success")
		m.LoginAttempt("success")
		m.FeedbackOperation("delete")
		m.AccountDeleted()
	})
}

func TestHandler(t *testing.T) {
	m := NewMetrics("test_service")
	m.LoginAttempt("success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_service_logins_total{result="success"} 1`)
}
