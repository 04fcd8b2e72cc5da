// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/council-ballot/apiclient"
	"github.com/danielhkuo/council-ballot/ballot"
	"github.com/danielhkuo/council-ballot/directory"
	"github.com/danielhkuo/council-ballot/models"
	"github.com/danielhkuo/council-ballot/testutil"
)

// newVoting returns a logged-in Voting with the demo election selected
func newVoting(t *testing.T, api *testutil.FakeElectionAPI) *Voting {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	client, err := apiclient.New(api.URL())
	if err != nil {
		t.Fatal(err)
	}
	info, err := client.DemoLogin(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	v := NewVoting(client, directory.NewStore(db), NewReceiptStore(db))
	v.SetUser(info.User)
	if err := v.SelectElection(context.Background(), testutil.DemoElectionID); err != nil {
		t.Fatalf("SelectElection() error = %v", err)
	}
	return v
}

func fill(t *testing.T, v *Voting) {
	t.Helper()
	for i := 1; i <= ballot.CouncilSeats; i++ {
		if err := v.ToggleCouncil(i); err != nil {
			t.Fatalf("ToggleCouncil(%d): %v", i, err)
		}
	}
	for i := 1; i <= ballot.ExecutiveSeats; i++ {
		if err := v.ToggleExecutive(i); err != nil {
			t.Fatalf("ToggleExecutive(%d): %v", i, err)
		}
	}
}

func TestGesturesBeforeElectionSelected(t *testing.T) {
	v := NewVoting(nil, nil, nil)

	if err := v.ToggleCouncil(1); !errors.Is(err, ErrNoElection) {
		t.Errorf("Expected ErrNoElection, got %v", err)
	}
	if err := v.ToggleExecutive(1); !errors.Is(err, ErrNoElection) {
		t.Errorf("Expected ErrNoElection, got %v", err)
	}
	if _, _, err := v.Submit(context.Background()); !errors.Is(err, ErrNoElection) {
		t.Errorf("Expected ErrNoElection, got %v", err)
	}

	view := v.View()
	if view.CouncilCapacity != 15 || view.ExecutiveCapacity != 7 || view.Submittable {
		t.Errorf("unexpected empty view %+v", view)
	}
}

func TestSelectElectionValidatesAgainstDirectory(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 20)
	v := newVoting(t, api)

	if err := v.ToggleCouncil(21); !errors.Is(err, ballot.ErrUnknownCandidate) {
		t.Errorf("Expected ErrUnknownCandidate, got %v", err)
	}
	if err := v.ToggleCouncil(20); err != nil {
		t.Errorf("ToggleCouncil(20) error = %v", err)
	}
	if !v.ElectionOpen() {
		t.Error("Expected demo election to be open")
	}
}

func TestSubmitSuccess(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 20)
	v := newVoting(t, api)
	fill(t, v)

	receipt, msg, err := v.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if msg != "Vote submitted successfully" {
		t.Errorf("unexpected message %q", msg)
	}
	if len(receipt.CouncilIDs) != 15 || len(receipt.ExecutiveIDs) != 7 {
		t.Errorf("unexpected receipt %+v", receipt)
	}

	// Ballot is discarded and the voter is marked
	view := v.View()
	if view.CouncilCount != 0 || view.ExecutiveCount != 0 {
		t.Errorf("Expected empty ballot after submission, got %+v", view)
	}
	if !view.HasVoted {
		t.Error("Expected has_voted after submission")
	}

	ballots := api.Ballots(testutil.DemoElectionID)
	if len(ballots) != 1 {
		t.Fatalf("Expected 1 upstream ballot, got %d", len(ballots))
	}

	receipts, err := v.Receipts(context.Background())
	if err != nil {
		t.Fatalf("Receipts() error = %v", err)
	}
	if len(receipts) != 1 || receipts[0].ID != receipt.ID {
		t.Errorf("Expected stored receipt %s, got %+v", receipt.ID, receipts)
	}

	// A second attempt never reaches the API
	fill(t, v)
	calls := api.SubmitCalls
	if _, _, err := v.Submit(context.Background()); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}
	if api.SubmitCalls != calls {
		t.Error("Expected no upstream call for a voter who already voted")
	}
}

func TestSubmitWithoutReceiptID(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 20)
	v := newVoting(t, api)
	fill(t, v)

	orig := newReceiptID
	newReceiptID = func() (string, error) { return "", errors.New("entropy exhausted") }
	t.Cleanup(func() { newReceiptID = orig })

	receipt, _, err := v.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if receipt.ID != "" {
		t.Errorf("Expected no receipt id, got %q", receipt.ID)
	}
	if !v.View().HasVoted {
		t.Error("Expected vote to count even without a local receipt")
	}

	receipts, err := v.Receipts(context.Background())
	if err != nil {
		t.Fatalf("Receipts() error = %v", err)
	}
	if len(receipts) != 0 {
		t.Errorf("Expected no stored receipt, got %+v", receipts)
	}
}

func TestSubmitGates(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(v *Voting)
		expected error
	}{
		{
			name:     "incomplete ballot",
			prepare:  func(v *Voting) { v.ToggleCouncil(1) },
			expected: ballot.ErrBallotIncomplete,
		},
		{
			name:     "closed election",
			prepare:  func(v *Voting) { v.open = false },
			expected: ErrElectionClosed,
		},
		{
			name:     "no user",
			prepare:  func(v *Voting) { v.SetUser(nil) },
			expected: ErrNotAuthenticated,
		},
		{
			name:     "already voted",
			prepare:  func(v *Voting) { v.User().HasVoted = true },
			expected: ErrAlreadyVoted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeElectionAPI(t, 20)
			v := newVoting(t, api)
			if tt.name != "incomplete ballot" {
				fill(t, v)
			}
			tt.prepare(v)

			if _, _, err := v.Submit(context.Background()); !errors.Is(err, tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, err)
			}
			if api.SubmitCalls != 0 {
				t.Errorf("Expected no upstream call, got %d", api.SubmitCalls)
			}
		})
	}
}

func TestSubmitUpstreamClosedKeepsBallot(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 20)
	v := newVoting(t, api)
	fill(t, v)

	// Election closes after the session loaded its status
	api.SetOpen(testutil.DemoElectionID, false)

	if _, _, err := v.Submit(context.Background()); !errors.Is(err, ErrElectionClosed) {
		t.Fatalf("Expected ErrElectionClosed, got %v", err)
	}
	if api.SubmitCalls != 1 {
		t.Errorf("Expected exactly one upstream call, got %d", api.SubmitCalls)
	}
	if v.ElectionOpen() {
		t.Error("Expected session to learn the election is closed")
	}
	if !v.View().Submittable {
		t.Error("Expected ballot to survive a failed submission")
	}
}

func TestRefreshCandidatesPrunesSelections(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 20)
	v := newVoting(t, api)

	v.ToggleCouncil(1)
	v.ToggleCouncil(2)
	v.ToggleExecutive(1)
	v.ToggleExecutive(2)

	client, _ := apiclient.New(api.URL())
	client.DemoLogin(context.Background())
	if err := client.DeleteCandidate(context.Background(), testutil.DemoElectionID, 1); err != nil {
		t.Fatal(err)
	}

	if err := v.RefreshCandidates(context.Background()); err != nil {
		t.Fatalf("RefreshCandidates() error = %v", err)
	}

	view := v.View()
	if len(view.CouncilIDs) != 1 || view.CouncilIDs[0] != 2 {
		t.Errorf("Expected council [2], got %v", view.CouncilIDs)
	}
	if len(view.ExecutiveIDs) != 1 || view.ExecutiveIDs[0] != 2 {
		t.Errorf("Expected executive [2], got %v", view.ExecutiveIDs)
	}
}

func TestAnnotate(t *testing.T) {
	api := testutil.NewFakeElectionAPI(t, 5)
	v := newVoting(t, api)
	v.ToggleCouncil(2)
	v.ToggleExecutive(2)
	v.ToggleCouncil(3)

	views := v.Annotate([]models.Candidate{{ID: 1}, {ID: 2}, {ID: 3}})
	if views[0].Selected || views[0].Executive {
		t.Errorf("candidate 1 should be unselected: %+v", views[0])
	}
	if !views[1].Selected || !views[1].Executive {
		t.Errorf("candidate 2 should be council+executive: %+v", views[1])
	}
	if !views[2].Selected || views[2].Executive {
		t.Errorf("candidate 3 should be council only: %+v", views[2])
	}
}
