// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

// AdminHandler proxies election administration for the selected election.
// Authorisation is enforced upstream.
type AdminHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewAdminHandler(sessions *session.Manager, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{sessions: sessions, cfg: cfg}
}

// withElection resolves the session and its selected election, holding the
// session lock until release is called
func (h *AdminHandler) withElection(w http.ResponseWriter, r *http.Request) (s *session.Session, electionID string, release func(), ok bool) {
	s, ok = currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return nil, "", nil, false
	}
	s.Lock()

	electionID = s.Voting.ElectionID()
	if electionID == "" {
		s.Unlock()
		writeError(w, session.ErrNoElection, "")
		return nil, "", nil, false
	}
	return s, electionID, s.Unlock, true
}

// ListCandidates handles GET /admin/candidates
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	candidates, err := s.Client.AdminCandidates(r.Context(), electionID)
	if err != nil {
		writeError(w, err, "Failed to load candidates")
		return
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// AddCandidate handles POST /admin/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Activity < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity must not be negative")
		return
	}

	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	candidate, err := s.Client.AddCandidate(r.Context(), electionID, req)
	if err != nil {
		writeError(w, err, "Failed to add candidate")
		return
	}
	h.refresh(r, s)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// DeleteCandidate handles DELETE /admin/candidates/{candidate}. Selections
// of the removed candidate are dropped from this session's ballot.
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := candidateParam(w, r)
	if !ok {
		return
	}

	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	if err := s.Client.DeleteCandidate(r.Context(), electionID, candidateID); err != nil {
		writeError(w, err, "Failed to delete candidate")
		return
	}
	h.refresh(r, s)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Candidate deleted successfully"})
}

// ToggleElection handles POST /admin/election/toggle
func (h *AdminHandler) ToggleElection(w http.ResponseWriter, r *http.Request) {
	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	resp, err := s.Client.ToggleElection(r.Context(), electionID)
	if err != nil {
		writeError(w, err, "Failed to toggle election")
		return
	}
	if err := s.Voting.RefreshStatus(r.Context()); err != nil {
		slog.Warn("failed to refresh election status", "error", err, "election_id", electionID)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ScheduleElection handles POST /admin/election/schedule
func (h *AdminHandler) ScheduleElection(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.StartTime == "" || req.EndTime == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}

	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	resp, err := s.Client.ScheduleElection(r.Context(), electionID, req)
	if err != nil {
		writeError(w, err, "Failed to schedule election")
		return
	}
	if err := s.Voting.RefreshStatus(r.Context()); err != nil {
		slog.Warn("failed to refresh election status", "error", err, "election_id", electionID)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ExportVotes handles GET /admin/votes/export
func (h *AdminHandler) ExportVotes(w http.ResponseWriter, r *http.Request) {
	h.exportVotes(w, r, models.ExportJSON)
}

// ExportVotesCSV handles GET /admin/votes/export/csv
func (h *AdminHandler) ExportVotesCSV(w http.ResponseWriter, r *http.Request) {
	h.exportVotes(w, r, models.ExportCSV)
}

func (h *AdminHandler) exportVotes(w http.ResponseWriter, r *http.Request, format string) {
	s, electionID, release, ok := h.withElection(w, r)
	if !ok {
		return
	}
	defer release()

	body, contentType, err := s.Client.ExportVotes(r.Context(), electionID, format)
	if err != nil {
		writeError(w, err, "Failed to export votes")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=votes-%s.%s", electionID, format))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		slog.Error("failed to stream vote export", "error", err, "election_id", electionID)
	}
}

func (h *AdminHandler) refresh(r *http.Request, s *session.Session) {
	if err := s.Voting.RefreshCandidates(r.Context()); err != nil {
		slog.Warn("failed to refresh candidate directory", "error", err, "election_id", s.Voting.ElectionID())
	}
}
