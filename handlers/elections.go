// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

type ElectionHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewElectionHandler(sessions *session.Manager, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{sessions: sessions, cfg: cfg}
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	elections, err := s.Client.Elections(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load elections")
		return
	}
	if elections == nil {
		elections = []models.Election{}
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	s.Lock()
	defer s.Unlock()

	election, err := s.Client.CreateElection(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to create election")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, election)
}

// SelectElection handles POST /elections/{id}/select. Any ballot for a
// previously selected election is discarded.
func (h *ElectionHandler) SelectElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	if err := s.Voting.SelectElection(r.Context(), electionID); err != nil {
		writeError(w, err, "Failed to load election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.Voting.View())
}
