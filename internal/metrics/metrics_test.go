package metrics

import "testing"

func TestMetrics(t *testing.T) {
	// New registers on the default registry, so construct once.
	m := New()

	m.ObserveLogin("success")
	m.ObserveLogin("unauthorized")
	m.ObserveProviderCall("signin", 0.1)
	m.ObserveProviderCall("query", 0.2)
	m.IncLogouts()
	m.IncDashboardRenders()
}

func TestNilMetricsAreSafe(t *testing.T) {
	// Services accept a nil *Metrics; every observer must tolerate it.
	var m *Metrics
	m.ObserveLogin("success")
	m.ObserveProviderCall("signin", 0.1)
	m.IncLogouts()
	m.IncDashboardRenders()
}
