// Package storage persists session state: one bearer token per browser
// session, written wholesale and cleared wholesale on logout. SQLite keeps
// the token durable across process restarts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned when a session id has no stored token, either
// because it never logged in or because it logged out.
var ErrNoSession = errors.New("no stored session")

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(dbPath string) (*SessionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SessionRepository{db: db}, nil
}

func (r *SessionRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveToken stores the bearer token for a session, overwriting any prior
// value. There is a single writer per session, so no partial updates.
func (r *SessionRepository) SaveToken(ctx context.Context, sessionID, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, token, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_id)
		DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP`,
		sessionID, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	slog.InfoContext(ctx, "Session token stored", "session_id", sessionID)
	return nil
}

// Token returns the stored bearer token for a session. The token is opaque
// here; the provider remains the sole authority on its validity.
func (r *SessionRepository) Token(ctx context.Context, sessionID string) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		`SELECT token FROM sessions WHERE session_id = ?`, sessionID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// Clear removes all stored state for a session. No network call is made;
// the provider-side token simply stops being used.
func (r *SessionRepository) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	slog.InfoContext(ctx, "Session cleared", "session_id", sessionID)
	return nil
}
