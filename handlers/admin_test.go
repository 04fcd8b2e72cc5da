// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/council-ballot/auth"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/testutil"
)

func TestAdminAddCandidate(t *testing.T) {
	env := newTestEnv(t, 3)
	handler := NewAdminHandler(env.sessions, env.cfg)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid candidate",
			body:           models.AddCandidateRequest{Name: "New Person", Activity: 3, FieldOfActivity: "Science"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           models.AddCandidateRequest{Activity: 1},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative activity",
			body:           models.AddCandidateRequest{Name: "X", Activity: -1},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.AddCandidate(w, env.request("POST", "/admin/candidates", tt.body))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// The new candidate is selectable straight away
	w := env.toggle(t, "council", 4)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.ListCandidates(w, env.request("GET", "/admin/candidates", nil))
	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)
	if len(candidates) != 4 {
		t.Errorf("Expected 4 candidates, got %d", len(candidates))
	}
}

func TestAdminDeleteCandidatePrunesBallot(t *testing.T) {
	env := newTestEnv(t, 20)
	handler := NewAdminHandler(env.sessions, env.cfg)
	env.fillBallot(t)

	req := env.request("DELETE", "/admin/candidates/1", nil)
	req.SetPathValue("candidate", "1")
	w := httptest.NewRecorder()
	handler.DeleteCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	NewBallotHandler(env.sessions, env.cfg).GetBallot(w, env.request("GET", "/ballot", nil))
	var view models.BallotView
	testutil.AssertJSON(t, w, &view)
	if view.CouncilCount != 14 || view.ExecutiveCount != 6 {
		t.Errorf("Expected 14/6 after deleting candidate 1, got %d/%d", view.CouncilCount, view.ExecutiveCount)
	}

	// Deleted candidate can no longer be chosen
	w = env.toggle(t, "council", 1)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	// Deleting again is an upstream 404
	req = env.request("DELETE", "/admin/candidates/1", nil)
	req.SetPathValue("candidate", "1")
	w = httptest.NewRecorder()
	handler.DeleteCandidate(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAdminToggleElection(t *testing.T) {
	env := newTestEnv(t, 20)
	handler := NewAdminHandler(env.sessions, env.cfg)

	w := httptest.NewRecorder()
	handler.ToggleElection(w, env.request("POST", "/admin/election/toggle", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	NewBallotHandler(env.sessions, env.cfg).GetBallot(w, env.request("GET", "/ballot", nil))
	var view models.BallotView
	testutil.AssertJSON(t, w, &view)
	if view.ElectionOpen {
		t.Error("Expected session to see the election closed")
	}
}

func TestAdminScheduleElection(t *testing.T) {
	env := newTestEnv(t, 20)
	handler := NewAdminHandler(env.sessions, env.cfg)

	w := httptest.NewRecorder()
	handler.ScheduleElection(w, env.request("POST", "/admin/election/schedule", models.ScheduleElectionRequest{StartTime: "2025-04-01T08:00"}))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = httptest.NewRecorder()
	handler.ScheduleElection(w, env.request("POST", "/admin/election/schedule", models.ScheduleElectionRequest{
		StartTime: "2025-04-01T08:00",
		EndTime:   "2025-04-02T20:00",
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestAdminExportVotes(t *testing.T) {
	env := newTestEnv(t, 20)
	handler := NewAdminHandler(env.sessions, env.cfg)

	env.fillBallot(t)
	w := httptest.NewRecorder()
	NewBallotHandler(env.sessions, env.cfg).SubmitBallot(w, env.request("POST", "/ballot/submit", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	handler.ExportVotesCSV(w, env.request("GET", "/admin/votes/export/csv", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Errorf("Expected CSV content type, got %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "1,15,7") {
		t.Errorf("Expected exported vote row, got %q", w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "votes-demo-election.csv") {
		t.Errorf("Unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}

	w = httptest.NewRecorder()
	handler.ExportVotes(w, env.request("GET", "/admin/votes/export", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"votes"`) {
		t.Errorf("Expected JSON export body, got %q", w.Body.String())
	}
}

func TestAdminRequiresElection(t *testing.T) {
	env := newTestEnv(t, 20)

	// A session that never selected an election
	s := env.sessions.Create(nil)
	req := httptest.NewRequest("GET", "/admin/candidates", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: auth.SignSessionID(s.ID, env.cfg.SessionSalt)})
	w := httptest.NewRecorder()

	NewAdminHandler(env.sessions, env.cfg).ListCandidates(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != "no_election" {
		t.Errorf("Expected no_election, got %q", resp.Code)
	}
}
