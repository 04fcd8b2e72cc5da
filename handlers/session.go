// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/council-ballot/apiclient"
	"github.com/danielhkuo/council-ballot/auth"
	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

type SessionHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewSessionHandler(sessions *session.Manager, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{sessions: sessions, cfg: cfg}
}

// DemoLogin handles POST /session/demo
func (h *SessionHandler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	client, err := apiclient.New(h.cfg.APIBaseURL)
	if err != nil {
		slog.Error("failed to create api client", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	info, err := client.DemoLogin(r.Context())
	if err != nil {
		writeError(w, err, "Demo login failed")
		return
	}

	// A fresh login replaces any session this browser already had
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if id, err := auth.ValidateSessionToken(cookie.Value, h.cfg.SessionSalt); err == nil {
			h.sessions.Delete(id)
		}
	}

	s := h.sessions.Create(client)
	s.Lock()
	defer s.Unlock()

	s.Voting.SetUser(info.User)
	if info.DemoElectionID != "" {
		if err := s.Voting.SelectElection(r.Context(), info.DemoElectionID); err != nil {
			slog.Warn("failed to select demo election", "error", err, "election_id", info.DemoElectionID)
		}
	}

	// No MaxAge: the manager's sliding idle TTL decides when a session ends
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    auth.SignSessionID(s.ID, h.cfg.SessionSalt),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.JSONResponse(w, http.StatusOK, info)
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	info, err := s.Client.Session(r.Context())
	if err != nil {
		writeError(w, err, "Failed to check session")
		return
	}
	if !info.Authenticated {
		h.sessions.Delete(s.ID)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// Upstream is authoritative for has_voted
	s.Voting.SetUser(info.User)
	middleware.JSONResponse(w, http.StatusOK, info)
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	if err := s.Client.Logout(r.Context()); err != nil {
		slog.Warn("upstream logout failed", "error", err, "session_id", s.ID)
	}
	h.sessions.Delete(s.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}
