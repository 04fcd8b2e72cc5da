// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/directory"
	"github.com/danielhkuo/council-ballot/handlers"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/session"
)

func NewRouter(db *sql.DB, sessions *session.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessions, cfg)
	electionHandler := handlers.NewElectionHandler(sessions, cfg)
	candidateHandler := handlers.NewCandidateHandler(sessions, directory.NewStore(db), cfg)
	ballotHandler := handlers.NewBallotHandler(sessions, cfg)
	resultsHandler := handlers.NewResultsHandler(sessions, cfg)
	adminHandler := handlers.NewAdminHandler(sessions, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session
	mux.HandleFunc("POST /session/demo", middleware.WithLogging(sessionHandler.DemoLogin))
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /session/logout", middleware.WithLogging(sessionHandler.Logout))

	// Elections and candidates
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("POST /elections/{id}/select", middleware.WithLogging(electionHandler.SelectElection))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.ListCandidates))

	// Ballot composition and submission
	mux.HandleFunc("GET /ballot", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("DELETE /ballot", middleware.WithLogging(ballotHandler.ResetBallot))
	mux.HandleFunc("POST /ballot/council/{candidate}", middleware.WithLogging(ballotHandler.ToggleCouncil))
	mux.HandleFunc("POST /ballot/executive/{candidate}", middleware.WithLogging(ballotHandler.ToggleExecutive))
	mux.HandleFunc("POST /ballot/submit", middleware.WithLogging(ballotHandler.SubmitBallot))
	mux.HandleFunc("GET /ballot/receipts", middleware.WithLogging(ballotHandler.GetReceipts))

	// Results (sealed upstream until the election closes)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /results/export.xlsx", middleware.WithLogging(resultsHandler.ExportResults))

	// Administration of the selected election
	mux.HandleFunc("GET /admin/candidates", middleware.WithLogging(adminHandler.ListCandidates))
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(adminHandler.AddCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{candidate}", middleware.WithLogging(adminHandler.DeleteCandidate))
	mux.HandleFunc("POST /admin/election/toggle", middleware.WithLogging(adminHandler.ToggleElection))
	mux.HandleFunc("POST /admin/election/schedule", middleware.WithLogging(adminHandler.ScheduleElection))
	mux.HandleFunc("GET /admin/votes/export", middleware.WithLogging(adminHandler.ExportVotes))
	mux.HandleFunc("GET /admin/votes/export/csv", middleware.WithLogging(adminHandler.ExportVotesCSV))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("council-ballot API v1"))
	})

	return mux
}
