// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/council-ballot/apiclient"
	"github.com/danielhkuo/council-ballot/auth"
	"github.com/danielhkuo/council-ballot/ballot"
	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/session"
)

// SessionCookie carries the signed voting session ID
const SessionCookie = "ballot_session"

// currentSession resolves the request's voting session. It writes a 401
// and returns false when there is none.
func currentSession(sessions *session.Manager, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No voting session")
		return nil, false
	}

	id, err := auth.ValidateSessionToken(cookie.Value, cfg.SessionSalt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voting session")
		return nil, false
	}

	s, ok := sessions.Get(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Voting session expired")
		return nil, false
	}
	return s, true
}

// candidateParam parses the {candidate} path value
func candidateParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("candidate"))
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate id")
		return 0, false
	}
	return id, true
}

// writeError maps session, ballot and upstream errors to HTTP responses.
// fallback is the message used for unexpected failures.
func writeError(w http.ResponseWriter, err error, fallback string) {
	if code, key, ok := ballot.Describe(err); ok {
		middleware.ErrorResponseCode(w, http.StatusUnprocessableEntity, code, key)
		return
	}

	switch {
	case errors.Is(err, session.ErrNoElection):
		middleware.ErrorResponseCode(w, http.StatusConflict, "no_election", "No election selected")
		return
	case errors.Is(err, session.ErrElectionClosed):
		middleware.ErrorResponseCode(w, http.StatusConflict, "election_closed", "Election is currently closed")
		return
	case errors.Is(err, session.ErrAlreadyVoted):
		middleware.ErrorResponseCode(w, http.StatusConflict, "already_voted", "You have already voted in this election")
		return
	case errors.Is(err, session.ErrNotAuthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 600 {
		middleware.ErrorResponse(w, apiErr.StatusCode, apiErr.Message)
		return
	}

	slog.Error(fallback, "error", err)
	middleware.ErrorResponse(w, http.StatusBadGateway, fallback)
}
