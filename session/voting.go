// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/council-ballot/apiclient"
	"github.com/danielhkuo/council-ballot/auth"
	"github.com/danielhkuo/council-ballot/ballot"
	"github.com/danielhkuo/council-ballot/directory"
	"github.com/danielhkuo/council-ballot/models"
)

var (
	ErrNoElection       = errors.New("no election selected")
	ErrElectionClosed   = errors.New("election is closed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyVoted     = errors.New("already voted in this election")
)

// newReceiptID is swapped in tests
var newReceiptID = func() (string, error) { return auth.GenerateID(16) }

// Upstream is what a voting session needs from the election API
type Upstream interface {
	directory.Source
	ElectionStatus(ctx context.Context, electionID string) (models.ElectionStatus, error)
	SubmitVote(ctx context.Context, electionID string, payload models.BallotPayload) (models.MessageResponse, error)
}

// Voting drives one voter's ballot for the selected election. It is not
// safe for concurrent use; Session serialises access.
type Voting struct {
	upstream  Upstream
	directory *directory.Store
	receipts  *ReceiptStore

	user       *models.User
	electionID string
	open       bool
	roster     *directory.Roster
	ballot     *ballot.State
}

func NewVoting(upstream Upstream, store *directory.Store, receipts *ReceiptStore) *Voting {
	return &Voting{upstream: upstream, directory: store, receipts: receipts}
}

func (v *Voting) SetUser(u *models.User) { v.user = u }
func (v *Voting) User() *models.User     { return v.user }
func (v *Voting) ElectionID() string     { return v.electionID }
func (v *Voting) ElectionOpen() bool     { return v.open }

// Contains implements ballot.Directory against the current roster
func (v *Voting) Contains(id int) bool {
	return v.roster != nil && v.roster.Contains(id)
}

// SelectElection loads candidates and status for electionID and starts an
// empty ballot. A ballot never carries over between elections.
func (v *Voting) SelectElection(ctx context.Context, electionID string) error {
	candidates, err := v.directory.Refresh(ctx, electionID, v.upstream)
	if err != nil {
		return err
	}

	status, err := v.upstream.ElectionStatus(ctx, electionID)
	if err != nil {
		return fmt.Errorf("failed to load election status: %w", err)
	}

	v.electionID = electionID
	v.open = status.IsOpen
	v.roster = directory.NewRoster(candidates)
	v.ballot = ballot.New(v)

	slog.Info("election selected", "election_id", electionID, "candidates", v.roster.Len(), "open", v.open)
	return nil
}

// RefreshCandidates reloads the roster and drops selections of candidates
// that are no longer eligible.
func (v *Voting) RefreshCandidates(ctx context.Context) error {
	if v.ballot == nil {
		return ErrNoElection
	}

	candidates, err := v.directory.Refresh(ctx, v.electionID, v.upstream)
	if err != nil {
		return err
	}

	prev := v.ballot.Snapshot()
	v.roster = directory.NewRoster(candidates)
	v.ballot = ballot.New(v)

	// Replaying through the public operations keeps every invariant
	for _, id := range prev.CouncilIDs {
		_ = v.ballot.ToggleCouncil(id)
	}
	for _, id := range prev.ExecutiveIDs {
		_ = v.ballot.ToggleExecutive(id)
	}
	return nil
}

// RefreshStatus re-reads the election open flag
func (v *Voting) RefreshStatus(ctx context.Context) error {
	if v.electionID == "" {
		return ErrNoElection
	}
	status, err := v.upstream.ElectionStatus(ctx, v.electionID)
	if err != nil {
		return fmt.Errorf("failed to load election status: %w", err)
	}
	v.open = status.IsOpen
	return nil
}

func (v *Voting) ToggleCouncil(candidateID int) error {
	if v.ballot == nil {
		return ErrNoElection
	}
	return v.ballot.ToggleCouncil(candidateID)
}

func (v *Voting) ToggleExecutive(candidateID int) error {
	if v.ballot == nil {
		return ErrNoElection
	}
	return v.ballot.ToggleExecutive(candidateID)
}

func (v *Voting) Reset() {
	if v.ballot != nil {
		v.ballot.Reset()
	}
}

// Submit sends the ballot once. On success the ballot is cleared and the
// voter is marked as having voted; on failure the ballot is kept so the
// voter can retry.
func (v *Voting) Submit(ctx context.Context) (models.VoteReceipt, string, error) {
	if v.ballot == nil {
		return models.VoteReceipt{}, "", ErrNoElection
	}
	if !v.open {
		return models.VoteReceipt{}, "", ErrElectionClosed
	}
	if v.user == nil {
		return models.VoteReceipt{}, "", ErrNotAuthenticated
	}
	if v.user.HasVoted {
		return models.VoteReceipt{}, "", ErrAlreadyVoted
	}

	payload, err := v.ballot.Payload()
	if err != nil {
		return models.VoteReceipt{}, "", err
	}

	resp, err := v.upstream.SubmitVote(ctx, v.electionID, payload)
	switch {
	case apiclient.IsAlreadyVoted(err):
		v.user.HasVoted = true
		return models.VoteReceipt{}, "", ErrAlreadyVoted
	case apiclient.IsElectionClosed(err):
		v.open = false
		return models.VoteReceipt{}, "", ErrElectionClosed
	case err != nil:
		return models.VoteReceipt{}, "", fmt.Errorf("vote submission failed: %w", err)
	}

	v.ballot.Reset()
	v.user.HasVoted = true

	receipt := models.VoteReceipt{
		ElectionID:   v.electionID,
		VoterEmail:   v.user.Email,
		CouncilIDs:   payload.CouncilIDs,
		ExecutiveIDs: payload.ExecutiveIDs,
		SubmittedAt:  time.Now(),
	}

	// The vote is recorded upstream at this point; only the local copy can fail
	receiptID, err := newReceiptID()
	if err != nil {
		slog.Warn("failed to generate receipt id, receipt not stored", "error", err, "election_id", v.electionID)
	} else {
		receipt.ID = receiptID
		if err := v.receipts.Save(ctx, receipt); err != nil {
			slog.Warn("failed to store vote receipt", "error", err, "election_id", v.electionID)
		}
	}

	slog.Info("ballot submitted", "election_id", v.electionID, "receipt_id", receipt.ID)
	return receipt, resp.Message, nil
}

// Receipts lists this voter's stored receipts for the selected election
func (v *Voting) Receipts(ctx context.Context) ([]models.VoteReceipt, error) {
	if v.electionID == "" {
		return nil, ErrNoElection
	}
	if v.user == nil {
		return nil, ErrNotAuthenticated
	}
	return v.receipts.List(ctx, v.electionID, v.user.Email)
}

// View renders the ballot for the presentation layer
func (v *Voting) View() models.BallotView {
	view := models.BallotView{
		ElectionID:        v.electionID,
		CouncilIDs:        []int{},
		ExecutiveIDs:      []int{},
		CouncilCapacity:   ballot.CouncilSeats,
		ExecutiveCapacity: ballot.ExecutiveSeats,
		ElectionOpen:      v.open,
		HasVoted:          v.user != nil && v.user.HasVoted,
	}
	if v.ballot == nil {
		return view
	}

	snap := v.ballot.Snapshot()
	view.CouncilIDs = snap.CouncilIDs
	view.ExecutiveIDs = snap.ExecutiveIDs
	view.CouncilCount = len(snap.CouncilIDs)
	view.ExecutiveCount = len(snap.ExecutiveIDs)
	view.Submittable = snap.Submittable
	return view
}

// Annotate marks each candidate with its ballot status
func (v *Voting) Annotate(candidates []models.Candidate) []models.CandidateView {
	views := make([]models.CandidateView, 0, len(candidates))
	for _, c := range candidates {
		view := models.CandidateView{Candidate: c}
		if v.ballot != nil {
			view.Selected = v.ballot.IsCouncil(c.ID)
			view.Executive = v.ballot.IsExecutive(c.ID)
		}
		views = append(views, view)
	}
	return views
}
