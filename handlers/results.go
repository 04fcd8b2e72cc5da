// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/export"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

type ResultsHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewResultsHandler(sessions *session.Manager, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{sessions: sessions, cfg: cfg}
}

// GetResults handles GET /results
// Results stay sealed upstream while the election is open
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.fetch(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ExportResults handles GET /results/export.xlsx
func (h *ResultsHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if resp.IsOpen {
		middleware.ErrorResponseCode(w, http.StatusConflict, "election_open", resp.Message)
		return
	}

	f, err := export.ResultsWorkbook(resp)
	if err != nil {
		slog.Error("failed to build results workbook", "error", err, "election_id", resp.ElectionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export results")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=results-%s.xlsx", resp.ElectionID))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		slog.Error("failed to write results workbook", "error", err)
	}
}

func (h *ResultsHandler) fetch(w http.ResponseWriter, r *http.Request) (models.ResultsResponse, bool) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return models.ResultsResponse{}, false
	}
	s.Lock()
	defer s.Unlock()

	electionID := s.Voting.ElectionID()
	if electionID == "" {
		writeError(w, session.ErrNoElection, "")
		return models.ResultsResponse{}, false
	}

	results, err := s.Client.Results(r.Context(), electionID)
	if err != nil {
		writeError(w, err, "Failed to load results")
		return models.ResultsResponse{}, false
	}
	return formatResults(electionID, results, time.Now()), true
}

// formatResults ranks candidates by council votes, then executive votes,
// then name, and adds display strings
func formatResults(electionID string, results models.Results, now time.Time) models.ResultsResponse {
	resp := models.ResultsResponse{
		ElectionID:   electionID,
		IsOpen:       results.IsOpen,
		Message:      results.Message,
		TotalVotes:   results.TotalVotes,
		TotalDisplay: humanize.Comma(int64(results.TotalVotes)),
		Results:      []models.FormattedResult{},
		FetchedAt:    now.UTC().Format(time.RFC3339),
	}

	ranked := make([]models.CandidateResult, len(results.Results))
	copy(ranked, results.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CouncilVotes != ranked[j].CouncilVotes {
			return ranked[i].CouncilVotes > ranked[j].CouncilVotes
		}
		if ranked[i].ExecutiveVotes != ranked[j].ExecutiveVotes {
			return ranked[i].ExecutiveVotes > ranked[j].ExecutiveVotes
		}
		return ranked[i].Name < ranked[j].Name
	})

	for i, c := range ranked {
		percent := 0.0
		if results.TotalVotes > 0 {
			percent = float64(c.CouncilVotes) / float64(results.TotalVotes) * 100
		}
		resp.Results = append(resp.Results, models.FormattedResult{
			Rank:             i + 1,
			ID:               c.ID,
			Name:             c.Name,
			CouncilVotes:     c.CouncilVotes,
			ExecutiveVotes:   c.ExecutiveVotes,
			CouncilDisplay:   humanize.Comma(int64(c.CouncilVotes)),
			ExecutiveDisplay: humanize.Comma(int64(c.ExecutiveVotes)),
			CouncilPercent:   humanize.FormatFloat("#,###.#", percent) + "%",
		})
	}
	return resp
}
