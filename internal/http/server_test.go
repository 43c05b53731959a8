package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"xpdash/internal/core"
	"xpdash/internal/provider"
	"xpdash/internal/services"
)

type fakeDashboard struct {
	loginErr     error
	view         services.DashboardView
	viewErr      error
	loggedIn     map[string]bool
	logoutCalled bool
}

func newFakeDashboard() *fakeDashboard {
	return &fakeDashboard{loggedIn: make(map[string]bool)}
}

func (f *fakeDashboard) Login(ctx context.Context, sessionID, username, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn[sessionID] = true
	return nil
}

func (f *fakeDashboard) Logout(ctx context.Context, sessionID string) error {
	f.logoutCalled = true
	delete(f.loggedIn, sessionID)
	return nil
}

func (f *fakeDashboard) Dashboard(ctx context.Context, sessionID string) (services.DashboardView, error) {
	if f.viewErr != nil {
		return services.DashboardView{}, f.viewErr
	}
	if !f.loggedIn[sessionID] {
		return services.DashboardView{}, services.ErrNotLoggedIn
	}
	return f.view, nil
}

func newTestServer(t *testing.T, dashboard Dashboard) *httptest.Server {
	t.Helper()
	srv := NewServer(":0", dashboard)
	ts := httptest.NewServer(srv.Server.Handler)
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return ts
}

func postLogin(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/login", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	return resp
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestLoginUnauthorized(t *testing.T) {
	dashboard := newFakeDashboard()
	dashboard.loginErr = provider.ErrUnauthorized
	ts := newTestServer(t, dashboard)

	resp := postLogin(t, ts, `{"username":"alice","password":"wrong"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != msgBadCredentials {
		t.Fatalf("message = %q, want %q", msg, msgBadCredentials)
	}
	if len(dashboard.loggedIn) != 0 {
		t.Fatalf("session stored after failed login")
	}
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t, newFakeDashboard())

	resp := postLogin(t, ts, `{"username":"alice","password":"secret"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("no session cookie set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	ts := newTestServer(t, newFakeDashboard())

	resp := postLogin(t, ts, `{"username":"","password":""}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != msgBadCredentials {
		t.Fatalf("message = %q", msg)
	}
}

func TestDashboardRequiresLogin(t *testing.T) {
	ts := newTestServer(t, newFakeDashboard())

	resp, err := http.Get(ts.URL + "/api/dashboard")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestDashboardFlow(t *testing.T) {
	dashboard := newFakeDashboard()
	dashboard.view = services.DashboardView{
		Greeting:    "Hello, Jane Doe!",
		TotalXPText: "5.00",
		ExperienceChart: core.Dataset{
			Labels: []string{"p1"},
			Values: []float64{5},
			Colors: []core.ColorPair{{Fill: "rgba(1, 2, 3, 0.5)", Border: "rgba(1, 2, 3, 1)"}},
		}.ChartConfig(core.ChartBar),
	}
	ts := newTestServer(t, dashboard)

	login := postLogin(t, ts, `{"username":"alice","password":"secret"}`)
	login.Body.Close()
	cookies := login.Cookies()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var view services.DashboardView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Greeting != "Hello, Jane Doe!" || view.TotalXPText != "5.00" {
		t.Fatalf("view = %+v", view)
	}
	if view.ExperienceChart.Data.Labels[0] != "p1" {
		t.Fatalf("chart labels = %v", view.ExperienceChart.Data.Labels)
	}
}

func TestDashboardFetchFailureSurfaced(t *testing.T) {
	dashboard := newFakeDashboard()
	dashboard.viewErr = provider.ErrFetch
	ts := newTestServer(t, dashboard)

	login := postLogin(t, ts, `{"username":"alice","password":"secret"}`)
	login.Body.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/dashboard", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != msgFetchFailed {
		t.Fatalf("message = %q", msg)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	dashboard := newFakeDashboard()
	ts := newTestServer(t, dashboard)

	login := postLogin(t, ts, `{"username":"alice","password":"secret"}`)
	login.Body.Close()

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/logout", nil)
	for _, c := range login.Cookies() {
		req.AddCookie(c)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post logout: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !dashboard.logoutCalled {
		t.Fatalf("logout not propagated to service")
	}
}

func TestLoginRateLimited(t *testing.T) {
	dashboard := newFakeDashboard()
	dashboard.loginErr = provider.ErrUnauthorized
	ts := newTestServer(t, dashboard)

	var last int
	for i := 0; i < 25; i++ {
		req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/login", strings.NewReader(`{"username":"a","password":"b"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("post login: %v", err)
		}
		last = resp.StatusCode
		resp.Body.Close()
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want 429", last)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, newFakeDashboard())

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, resp.StatusCode)
		}
	}
}
