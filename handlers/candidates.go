// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/directory"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

type CandidateHandler struct {
	sessions  *session.Manager
	directory *directory.Store
	cfg       cliparse.Config
}

func NewCandidateHandler(sessions *session.Manager, store *directory.Store, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{sessions: sessions, directory: store, cfg: cfg}
}

// ListCandidates handles GET /candidates?q=&sort=
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	electionID := s.Voting.ElectionID()
	if electionID == "" {
		writeError(w, session.ErrNoElection, "")
		return
	}

	query := directory.Query{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Sort:   r.URL.Query().Get("sort"),
	}
	switch query.Sort {
	case "", models.SortNameAsc, models.SortNameDesc, models.SortActivityDesc, models.SortActivityAsc:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid sort order")
		return
	}

	candidates, err := h.directory.List(r.Context(), electionID, query)
	if err != nil {
		slog.Error("failed to list candidates", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, s.Voting.Annotate(candidates))
}
