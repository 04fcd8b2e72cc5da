// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/council-ballot/cliparse"
	"github.com/danielhkuo/council-ballot/middleware"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/session"
)

type BallotHandler struct {
	sessions *session.Manager
	cfg      cliparse.Config
}

func NewBallotHandler(sessions *session.Manager, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{sessions: sessions, cfg: cfg}
}

// GetBallot handles GET /ballot
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	middleware.JSONResponse(w, http.StatusOK, s.Voting.View())
}

// ToggleCouncil handles POST /ballot/council/{candidate}
func (h *BallotHandler) ToggleCouncil(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, (*session.Voting).ToggleCouncil)
}

// ToggleExecutive handles POST /ballot/executive/{candidate}
func (h *BallotHandler) ToggleExecutive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, (*session.Voting).ToggleExecutive)
}

func (h *BallotHandler) toggle(w http.ResponseWriter, r *http.Request, gesture func(*session.Voting, int) error) {
	candidateID, ok := candidateParam(w, r)
	if !ok {
		return
	}

	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	if err := gesture(s.Voting, candidateID); err != nil {
		writeError(w, err, "Failed to update ballot")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, s.Voting.View())
}

// ResetBallot handles DELETE /ballot
func (h *BallotHandler) ResetBallot(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	s.Voting.Reset()
	middleware.JSONResponse(w, http.StatusOK, s.Voting.View())
}

// SubmitBallot handles POST /ballot/submit. The upstream API is called at
// most once per request and failures are never retried here.
func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	receipt, message, err := s.Voting.Submit(r.Context())
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			h.sessions.Delete(s.ID)
		}
		writeError(w, err, "Failed to submit vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitBallotResponse{
		ReceiptID: receipt.ID,
		Message:   message,
	})
}

// GetReceipts handles GET /ballot/receipts
func (h *BallotHandler) GetReceipts(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(h.sessions, h.cfg, w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()

	receipts, err := s.Voting.Receipts(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load receipts")
		return
	}
	if receipts == nil {
		receipts = []models.VoteReceipt{}
	}
	middleware.JSONResponse(w, http.StatusOK, receipts)
}
