// Package services orchestrates the dashboard flow: credential exchange,
// token persistence, account fetch and aggregation into the view the page
// renders. All aggregates are recomputed on every render pass; nothing is
// carried between renders except the stored token.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"xpdash/internal/amqp"
	"xpdash/internal/core"
	"xpdash/internal/metrics"
	"xpdash/internal/storage"
)

// ErrNotLoggedIn is returned when a session has no stored token.
var ErrNotLoggedIn = errors.New("not logged in")

type (
	// Identity is the remote identity/GraphQL provider.
	Identity interface {
		Authenticate(ctx context.Context, username, password string) (string, error)
		FetchAccount(ctx context.Context, token string) (core.Account, error)
	}

	// SessionStore is the durable token store.
	SessionStore interface {
		SaveToken(ctx context.Context, sessionID, token string) error
		Token(ctx context.Context, sessionID string) (string, error)
		Clear(ctx context.Context, sessionID string) error
	}

	// ActivityPublisher emits session activity events. A nil publisher
	// disables publishing.
	ActivityPublisher interface {
		PublishActivity(ctx context.Context, msg *amqp.ActivityMessage) error
	}
)

// DashboardView is everything one render pass needs: the profile text
// lines plus the two chart configurations for the render sink.
type DashboardView struct {
	Greeting          string           `json:"greeting"`
	AgeText           string           `json:"ageText"`
	ProjectsCompleted int              `json:"projectsCompleted"`
	TotalXPText       string           `json:"totalXpText"`       // kB
	AuditGivenText    string           `json:"auditGivenText"`    // MB
	AuditReceivedText string           `json:"auditReceivedText"` // MB
	AuditRatio        float64          `json:"auditRatio"`
	ExperienceChart   core.ChartConfig `json:"experienceChart"`
	AuditChart        core.ChartConfig `json:"auditChart"`
}

type DashboardService struct {
	identity Identity
	sessions SessionStore
	activity ActivityPublisher
	metrics  *metrics.Metrics

	// Collapses duplicate concurrent logins from the same session while a
	// request is already pending.
	loginGroup singleflight.Group

	now func() time.Time
}

func NewDashboardService(identity Identity, sessions SessionStore, activity ActivityPublisher, m *metrics.Metrics) *DashboardService {
	return &DashboardService{
		identity: identity,
		sessions: sessions,
		activity: activity,
		metrics:  m,
		now:      time.Now,
	}
}

// Login exchanges credentials for a token and persists it for the session,
// overwriting any prior token. Failure reasons are deliberately not
// distinguished beyond "unauthorized".
func (s *DashboardService) Login(ctx context.Context, sessionID, username, password string) error {
	_, err, _ := s.loginGroup.Do(sessionID, func() (interface{}, error) {
		start := time.Now()
		token, err := s.identity.Authenticate(ctx, username, password)
		s.metrics.ObserveProviderCall("signin", time.Since(start).Seconds())
		if err != nil {
			s.metrics.ObserveLogin("unauthorized")
			return nil, err
		}

		if err := s.sessions.SaveToken(ctx, sessionID, token); err != nil {
			s.metrics.ObserveLogin("error")
			return nil, fmt.Errorf("persist token: %w", err)
		}
		s.metrics.ObserveLogin("success")

		s.publish(ctx, amqp.NewLoginMessage(sessionID, username))
		return nil, nil
	})
	return err
}

// Logout clears all stored session state. No provider call is made.
func (s *DashboardService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.metrics.IncLogouts()
	s.publish(ctx, amqp.NewLogoutMessage(sessionID))
	return nil
}

// Dashboard runs one full render pass: fetch the account with the stored
// token, aggregate both summaries and format the profile lines.
func (s *DashboardService) Dashboard(ctx context.Context, sessionID string) (DashboardView, error) {
	token, err := s.sessions.Token(ctx, sessionID)
	if errors.Is(err, storage.ErrNoSession) {
		return DashboardView{}, ErrNotLoggedIn
	}
	if err != nil {
		return DashboardView{}, fmt.Errorf("load token: %w", err)
	}

	start := time.Now()
	account, err := s.identity.FetchAccount(ctx, token)
	s.metrics.ObserveProviderCall("query", time.Since(start).Seconds())
	if err != nil {
		slog.ErrorContext(ctx, "Account fetch failed", "session_id", sessionID, "error", err)
		return DashboardView{}, err
	}

	view, err := buildView(account, s.now())
	if err != nil {
		return DashboardView{}, err
	}
	s.metrics.IncDashboardRenders()
	return view, nil
}

// buildView aggregates the raw account into the view model. It is the only
// place the two summaries and the profile formatter meet.
func buildView(account core.Account, now time.Time) (DashboardView, error) {
	age, err := core.Age(account.Profile.DateOfBirth, now)
	if err != nil {
		return DashboardView{}, fmt.Errorf("format profile: %w", err)
	}

	experience := core.SummarizeExperience(account.Transactions)
	audits := core.SummarizeAudits(account.Transactions, account.Profile.AuditRatio)

	return DashboardView{
		Greeting:          fmt.Sprintf("Hello, %s!", account.Profile.FullName()),
		AgeText:           fmt.Sprintf("%d years old!", age),
		ProjectsCompleted: experience.ProjectCount,
		TotalXPText:       core.FormatMagnitude(core.ToKilobytes(experience.TotalAmount)),
		AuditGivenText:    core.FormatMagnitude(core.ToMegabytes(audits.GivenAmount)),
		AuditReceivedText: core.FormatMagnitude(core.ToMegabytes(audits.ReceivedAmount)),
		AuditRatio:        audits.Ratio,
		ExperienceChart:   experience.Dataset.ChartConfig(core.ChartBar),
		AuditChart:        audits.Dataset.ChartConfig(core.ChartDoughnut),
	}, nil
}

func (s *DashboardService) publish(ctx context.Context, msg *amqp.ActivityMessage) {
	if s.activity == nil {
		return
	}
	if err := s.activity.PublishActivity(ctx, msg); err != nil {
		// Activity events are best-effort.
		slog.WarnContext(ctx, "Failed to publish activity message",
			"event", msg.Event, "session_id", msg.SessionID, "error", err)
	}
}
