package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"xpdash/internal/core"
	"xpdash/internal/provider"
	"xpdash/internal/services"
)

const sessionCookieName = "xpdash_session"

// Inline message for every authentication failure; the provider does not
// reveal the cause, so neither does the page.
const msgBadCredentials = "Username or password is incorrect!"

const msgFetchFailed = "Failed to load your data. Please try again."

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	sessionID := s.sessionID(w, r)

	if err := s.dashboard.Login(r.Context(), sessionID, req.Username, req.Password); err != nil {
		if errors.Is(err, provider.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		// Nothing stored for this browser; logout is a no-op.
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if err := s.dashboard.Logout(r.Context(), cookie.Value); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	// Drop the session cookie along with the stored state.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	view, err := s.dashboard.Dashboard(r.Context(), cookie.Value)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, services.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "not logged in")
	case errors.Is(err, provider.ErrFetch), errors.Is(err, core.ErrInvalidDate):
		// Logged and surfaced: the page shows the failure instead of a
		// silently empty dashboard.
		slog.ErrorContext(r.Context(), "Dashboard build failed", "error", err)
		writeError(w, http.StatusBadGateway, msgFetchFailed)
	default:
		slog.ErrorContext(r.Context(), "Dashboard build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

// sessionID returns the browser's session id, minting and setting a new
// cookie when none is present.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
