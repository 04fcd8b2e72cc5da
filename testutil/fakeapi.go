// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/danielhkuo/council-ballot/models"
)

const (
	// DemoElectionID is the election created by POST /api/auth/demo
	DemoElectionID = "demo-election"
	DemoEmail      = "demo_user@example.com"

	fakeCookie = "fake_session"
)

// FakeElectionAPI is an in-memory stand-in for the upstream election API.
// It implements the subset of endpoints and validation rules the client
// depends on.
type FakeElectionAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	elections  map[string]*models.Election
	candidates map[string][]models.Candidate
	ballots    map[string][]models.BallotPayload
	voters     map[string]map[string]bool
	nextID     int

	// SubmitCalls counts POST .../votes/submit requests
	SubmitCalls int
}

// NewFakeElectionAPI starts a fake API with an open demo election holding
// candidateCount candidates (ids 1..candidateCount).
func NewFakeElectionAPI(t *testing.T, candidateCount int) *FakeElectionAPI {
	t.Helper()

	f := &FakeElectionAPI{
		elections:  map[string]*models.Election{},
		candidates: map[string][]models.Candidate{},
		ballots:    map[string][]models.BallotPayload{},
		voters:     map[string]map[string]bool{},
	}

	f.elections[DemoElectionID] = &models.Election{
		ID:     DemoElectionID,
		Name:   "Demo Election",
		IsOpen: true,
	}
	for i := 1; i <= candidateCount; i++ {
		f.candidates[DemoElectionID] = append(f.candidates[DemoElectionID], models.Candidate{
			ID:              i,
			Name:            fmt.Sprintf("Candidate %02d", i),
			Activity:        i % 5,
			FieldOfActivity: []string{"Education", "Health", "Culture"}[i%3],
		})
	}
	f.nextID = candidateCount + 1

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/demo", f.demoLogin)
	mux.HandleFunc("GET /api/auth/session", f.session)
	mux.HandleFunc("POST /api/auth/logout", f.logout)
	mux.HandleFunc("GET /api/elections", f.authed(f.listElections))
	mux.HandleFunc("POST /api/elections", f.authed(f.createElection))
	mux.HandleFunc("GET /api/elections/{id}/candidates", f.authed(f.listCandidates))
	mux.HandleFunc("GET /api/elections/{id}/admin/candidates", f.authed(f.listCandidates))
	mux.HandleFunc("POST /api/elections/{id}/admin/candidates", f.authed(f.addCandidate))
	mux.HandleFunc("DELETE /api/elections/{id}/admin/candidates/{cid}", f.authed(f.deleteCandidate))
	mux.HandleFunc("GET /api/elections/{id}/election/status", f.authed(f.status))
	mux.HandleFunc("POST /api/elections/{id}/admin/election/toggle", f.authed(f.toggle))
	mux.HandleFunc("POST /api/elections/{id}/admin/election/schedule", f.authed(f.schedule))
	mux.HandleFunc("POST /api/elections/{id}/votes/submit", f.authed(f.submit))
	mux.HandleFunc("GET /api/elections/{id}/results", f.authed(f.results))
	mux.HandleFunc("GET /api/elections/{id}/admin/votes/export", f.authed(f.exportJSON))
	mux.HandleFunc("GET /api/elections/{id}/admin/votes/export/csv", f.authed(f.exportCSV))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL to hand to apiclient.New
func (f *FakeElectionAPI) URL() string {
	return f.Server.URL
}

// SetOpen opens or closes an election
func (f *FakeElectionAPI) SetOpen(electionID string, open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.elections[electionID]; ok {
		e.IsOpen = open
	}
}

// Ballots returns the ballots accepted for an election
func (f *FakeElectionAPI) Ballots(electionID string) []models.BallotPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BallotPayload(nil), f.ballots[electionID]...)
}

func (f *FakeElectionAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(fakeCookie); err != nil {
			writeJSON(w, http.StatusUnauthorized, models.MessageResponse{Message: "Authentication required"})
			return
		}
		if id := r.PathValue("id"); id != "" {
			f.mu.Lock()
			_, ok := f.elections[id]
			f.mu.Unlock()
			if !ok {
				writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Election not found"})
				return
			}
		}
		next(w, r)
	}
}

func (f *FakeElectionAPI) demoLogin(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: fakeCookie, Value: "demo", Path: "/"})
	writeJSON(w, http.StatusOK, models.SessionInfo{
		Authenticated:  true,
		User:           f.demoUser(),
		DemoElectionID: DemoElectionID,
	})
}

func (f *FakeElectionAPI) session(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(fakeCookie); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.SessionInfo{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, models.SessionInfo{Authenticated: true, User: f.demoUser()})
}

func (f *FakeElectionAPI) demoUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.User{
		Name:            "Demo User",
		Email:           DemoEmail,
		IsAdmin:         true,
		IsEligibleVoter: true,
		HasVoted:        f.voters[DemoElectionID][DemoEmail],
	}
}

func (f *FakeElectionAPI) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: fakeCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

func (f *FakeElectionAPI) listElections(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	elections := []models.Election{}
	for _, e := range f.elections {
		elections = append(elections, *e)
	}
	writeJSON(w, http.StatusOK, elections)
}

func (f *FakeElectionAPI) createElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Election name is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	e := &models.Election{ID: "election-" + strconv.Itoa(len(f.elections)+1), Name: req.Name, Description: req.Description}
	f.elections[e.ID] = e
	writeJSON(w, http.StatusCreated, e)
}

func (f *FakeElectionAPI) listCandidates(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	candidates := append([]models.Candidate{}, f.candidates[r.PathValue("id")]...)
	writeJSON(w, http.StatusOK, candidates)
}

func (f *FakeElectionAPI) addCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Candidate name is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Candidate{
		ID:              f.nextID,
		Name:            req.Name,
		Photo:           req.Photo,
		Bio:             req.Bio,
		Activity:        req.Activity,
		FieldOfActivity: req.FieldOfActivity,
	}
	f.nextID++
	id := r.PathValue("id")
	f.candidates[id] = append(f.candidates[id], c)
	writeJSON(w, http.StatusCreated, c)
}

func (f *FakeElectionAPI) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	cid, _ := strconv.Atoi(r.PathValue("cid"))

	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	for i, c := range f.candidates[id] {
		if c.ID == cid {
			f.candidates[id] = append(f.candidates[id][:i], f.candidates[id][i+1:]...)
			writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Candidate deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, models.MessageResponse{Message: "Candidate not found"})
}

func (f *FakeElectionAPI) status(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, models.ElectionStatus{IsOpen: f.elections[r.PathValue("id")].IsOpen})
}

func (f *FakeElectionAPI) toggle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := f.elections[r.PathValue("id")]
	e.IsOpen = !e.IsOpen
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: fmt.Sprintf("Election is now %s", map[bool]string{true: "open", false: "closed"}[e.IsOpen])})
}

func (f *FakeElectionAPI) schedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StartTime == "" || req.EndTime == "" {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Start and end time are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	e := f.elections[r.PathValue("id")]
	e.StartTime, e.EndTime = &req.StartTime, &req.EndTime
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Election schedule updated successfully"})
}

func (f *FakeElectionAPI) submit(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SubmitCalls++

	id := r.PathValue("id")
	if f.voters[id][DemoEmail] {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "You have already voted in this election"})
		return
	}

	var payload models.BallotPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid data format"})
		return
	}
	if len(payload.CouncilIDs) != 15 || len(payload.ExecutiveIDs) != 7 {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Invalid number of selections"})
		return
	}
	council := map[int]bool{}
	for _, c := range payload.CouncilIDs {
		council[c] = true
	}
	for _, e := range payload.ExecutiveIDs {
		if !council[e] {
			writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "All executive candidates must also be selected as council members"})
			return
		}
	}
	if !f.elections[id].IsOpen {
		writeJSON(w, http.StatusBadRequest, models.MessageResponse{Message: "Election is currently closed"})
		return
	}

	if f.voters[id] == nil {
		f.voters[id] = map[string]bool{}
	}
	f.voters[id][DemoEmail] = true
	f.ballots[id] = append(f.ballots[id], payload)
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Vote submitted successfully"})
}

func (f *FakeElectionAPI) results(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := r.PathValue("id")
	if f.elections[id].IsOpen {
		writeJSON(w, http.StatusOK, models.Results{
			IsOpen:  true,
			Message: "Election is currently open. Results will be available after the election closes.",
			Results: []models.CandidateResult{},
		})
		return
	}

	council := map[int]int{}
	executive := map[int]int{}
	for _, b := range f.ballots[id] {
		for _, c := range b.CouncilIDs {
			council[c]++
		}
		for _, e := range b.ExecutiveIDs {
			executive[e]++
		}
	}

	results := []models.CandidateResult{}
	for _, c := range f.candidates[id] {
		results = append(results, models.CandidateResult{
			ID:             c.ID,
			Name:           c.Name,
			CouncilVotes:   council[c.ID],
			ExecutiveVotes: executive[c.ID],
		})
	}
	writeJSON(w, http.StatusOK, models.Results{TotalVotes: len(f.ballots[id]), Results: results})
}

func (f *FakeElectionAPI) exportJSON(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Disposition", "attachment; filename=votes.json")
	writeJSON(w, http.StatusOK, map[string]interface{}{"votes": f.ballots[r.PathValue("id")]})
}

func (f *FakeElectionAPI) exportCSV(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=votes.csv")
	fmt.Fprintln(w, "vote,council,executive")
	for i, b := range f.ballots[r.PathValue("id")] {
		fmt.Fprintf(w, "%d,%d,%d\n", i+1, len(b.CouncilIDs), len(b.ExecutiveIDs))
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
