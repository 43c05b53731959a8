package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dashboard.
type Metrics struct {
	LoginAttempts    *prometheus.CounterVec
	Logouts          prometheus.Counter
	DashboardRenders prometheus.Counter
	ProviderDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry. Call it
// once per process.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "xpdash_login_attempts_total",
			Help: "Login attempts by result (success, unauthorized, error)",
		}, []string{"result"}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "xpdash_logouts_total",
			Help: "Explicit logouts",
		}),
		DashboardRenders: promauto.NewCounter(prometheus.CounterOpts{
			Name: "xpdash_dashboard_renders_total",
			Help: "Successful dashboard render passes",
		}),
		ProviderDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xpdash_provider_call_duration_seconds",
			Help:    "Duration of identity provider calls by operation (signin, query)",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// ObserveLogin records one login attempt outcome.
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// ObserveProviderCall records the duration of one provider round trip.
func (m *Metrics) ObserveProviderCall(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(operation).Observe(seconds)
}

// IncLogouts counts one explicit logout.
func (m *Metrics) IncLogouts() {
	if m == nil {
		return
	}
	m.Logouts.Inc()
}

// IncDashboardRenders counts one successful render pass.
func (m *Metrics) IncDashboardRenders() {
	if m == nil {
		return
	}
	m.DashboardRenders.Inc()
}
