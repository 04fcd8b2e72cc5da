// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

type fixedDirectory map[int]bool

func (d fixedDirectory) Contains(id int) bool { return d[id] }

// candidates returns a directory holding ids 1..n
func candidates(n int) fixedDirectory {
	d := fixedDirectory{}
	for i := 1; i <= n; i++ {
		d[i] = true
	}
	return d
}

// fullBallot selects 1..15 as council and 1..7 as executive
func fullBallot(t *testing.T) *State {
	t.Helper()

	s := New(candidates(30))
	for i := 1; i <= CouncilSeats; i++ {
		if err := s.ToggleCouncil(i); err != nil {
			t.Fatalf("ToggleCouncil(%d): %v", i, err)
		}
	}
	for i := 1; i <= ExecutiveSeats; i++ {
		if err := s.ToggleExecutive(i); err != nil {
			t.Fatalf("ToggleExecutive(%d): %v", i, err)
		}
	}
	return s
}

func checkInvariants(t *testing.T, s *State) {
	t.Helper()

	if s.CouncilCount() > CouncilSeats {
		t.Fatalf("council has %d members, max %d", s.CouncilCount(), CouncilSeats)
	}
	if s.ExecutiveCount() > ExecutiveSeats {
		t.Fatalf("executive has %d members, max %d", s.ExecutiveCount(), ExecutiveSeats)
	}
	for _, id := range s.Snapshot().ExecutiveIDs {
		if !s.IsCouncil(id) {
			t.Fatalf("executive %d is not a council member", id)
		}
	}
}

func TestToggleCouncil(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(s *State)
		id          int
		expectedErr error
		council     []int
	}{
		{
			name:    "select candidate",
			id:      3,
			council: []int{3},
		},
		{
			name: "deselect candidate",
			setup: func(s *State) {
				s.ToggleCouncil(3)
				s.ToggleCouncil(4)
			},
			id:      3,
			council: []int{4},
		},
		{
			name:        "unknown candidate",
			setup:       func(s *State) { s.ToggleCouncil(1) },
			id:          99,
			expectedErr: ErrUnknownCandidate,
			council:     []int{1},
		},
		{
			name: "council full",
			setup: func(s *State) {
				for i := 1; i <= CouncilSeats; i++ {
					s.ToggleCouncil(i)
				}
			},
			id:          16,
			expectedErr: ErrCouncilCapacityExceeded,
			council:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(candidates(20))
			if tt.setup != nil {
				tt.setup(s)
			}

			err := s.ToggleCouncil(tt.id)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("Expected error %v, got %v", tt.expectedErr, err)
			}

			got := s.Snapshot().CouncilIDs
			if !reflect.DeepEqual(got, tt.council) {
				t.Errorf("Expected council %v, got %v", tt.council, got)
			}
			checkInvariants(t, s)
		})
	}
}

func TestToggleExecutive(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(s *State)
		id          int
		expectedErr error
		executive   []int
	}{
		{
			name:      "mark council member",
			setup:     func(s *State) { s.ToggleCouncil(2) },
			id:        2,
			executive: []int{2},
		},
		{
			name: "unmark executive",
			setup: func(s *State) {
				s.ToggleCouncil(2)
				s.ToggleExecutive(2)
			},
			id:        2,
			executive: []int{},
		},
		{
			name:        "not a council member",
			id:          99,
			expectedErr: ErrNotCouncilMember,
			executive:   []int{},
		},
		{
			name: "executive full",
			setup: func(s *State) {
				for i := 1; i <= 8; i++ {
					s.ToggleCouncil(i)
				}
				for i := 1; i <= ExecutiveSeats; i++ {
					s.ToggleExecutive(i)
				}
			},
			id:          8,
			expectedErr: ErrExecutiveCapacityExceeded,
			executive:   []int{1, 2, 3, 4, 5, 6, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(candidates(20))
			if tt.setup != nil {
				tt.setup(s)
			}

			err := s.ToggleExecutive(tt.id)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("Expected error %v, got %v", tt.expectedErr, err)
			}

			got := s.Snapshot().ExecutiveIDs
			if !reflect.DeepEqual(got, tt.executive) {
				t.Errorf("Expected executive %v, got %v", tt.executive, got)
			}
			checkInvariants(t, s)
		})
	}
}

func TestCouncilRemovalRevokesExecutive(t *testing.T) {
	s := New(candidates(5))
	s.ToggleCouncil(1)
	s.ToggleExecutive(1)

	if err := s.ToggleCouncil(1); err != nil {
		t.Fatalf("ToggleCouncil: %v", err)
	}
	if s.IsExecutive(1) {
		t.Error("Expected executive status to be revoked with council status")
	}

	// Re-selecting must not bring executive status back
	s.ToggleCouncil(1)
	if s.IsExecutive(1) {
		t.Error("Expected re-selected candidate to start without executive status")
	}
}

func TestFullBallotScenario(t *testing.T) {
	s := New(candidates(30))
	for i := 1; i <= CouncilSeats; i++ {
		if err := s.ToggleCouncil(i); err != nil {
			t.Fatalf("ToggleCouncil(%d): %v", i, err)
		}
	}
	if s.IsSubmittable() {
		t.Fatal("Expected ballot without executives to be unsubmittable")
	}

	for i := 1; i <= ExecutiveSeats; i++ {
		if err := s.ToggleExecutive(i); err != nil {
			t.Fatalf("ToggleExecutive(%d): %v", i, err)
		}
	}
	if !s.IsSubmittable() {
		t.Fatal("Expected 15/7 ballot to be submittable")
	}

	payload, err := s.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}

	wantCouncil := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	wantExecutive := []int{1, 2, 3, 4, 5, 6, 7}
	if !reflect.DeepEqual(payload.CouncilIDs, wantCouncil) {
		t.Errorf("Expected council %v, got %v", wantCouncil, payload.CouncilIDs)
	}
	if !reflect.DeepEqual(payload.ExecutiveIDs, wantExecutive) {
		t.Errorf("Expected executive %v, got %v", wantExecutive, payload.ExecutiveIDs)
	}
}

func TestRemoveFromFullBallot(t *testing.T) {
	s := fullBallot(t)

	if err := s.ToggleCouncil(1); err != nil {
		t.Fatalf("ToggleCouncil: %v", err)
	}

	if s.IsCouncil(1) || s.IsExecutive(1) {
		t.Error("Expected candidate 1 removed from council and executive")
	}
	if s.CouncilCount() != 14 || s.ExecutiveCount() != 6 {
		t.Errorf("Expected 14/6, got %d/%d", s.CouncilCount(), s.ExecutiveCount())
	}
	if s.IsSubmittable() {
		t.Error("Expected ballot to be unsubmittable after removal")
	}
}

func TestToggleExecutiveUnselectedLeavesStateUnchanged(t *testing.T) {
	s := fullBallot(t)
	before := s.Snapshot()

	err := s.ToggleExecutive(99)
	if !errors.Is(err, ErrNotCouncilMember) {
		t.Fatalf("Expected ErrNotCouncilMember, got %v", err)
	}

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("State changed: before %+v, after %+v", before, after)
	}
}

func TestPayloadRequiresExactCounts(t *testing.T) {
	tests := []struct {
		name      string
		council   int
		executive int
		wantErr   bool
	}{
		{"empty", 0, 0, true},
		{"council only", 15, 0, true},
		{"one executive short", 15, 6, true},
		{"one council short", 14, 7, true},
		{"complete", 15, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(candidates(30))
			for i := 1; i <= tt.council; i++ {
				s.ToggleCouncil(i)
			}
			for i := 1; i <= tt.executive; i++ {
				s.ToggleExecutive(i)
			}

			_, err := s.Payload()
			if tt.wantErr && !errors.Is(err, ErrBallotIncomplete) {
				t.Errorf("Expected ErrBallotIncomplete, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestReset(t *testing.T) {
	s := fullBallot(t)
	s.Reset()

	snap := s.Snapshot()
	if len(snap.CouncilIDs) != 0 || len(snap.ExecutiveIDs) != 0 || snap.Submittable {
		t.Errorf("Expected empty ballot after reset, got %+v", snap)
	}
	checkInvariants(t, s)

	// Reset ballot is usable again
	if err := s.ToggleCouncil(20); err != nil {
		t.Errorf("ToggleCouncil after reset: %v", err)
	}
}

func TestRandomGesturesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New(candidates(25))

	for i := 0; i < 5000; i++ {
		// ids 0 and 26..30 are outside the directory
		id := rng.Intn(31)
		before := s.Snapshot()

		var err error
		if rng.Intn(3) == 0 {
			err = s.ToggleCouncil(id)
		} else {
			err = s.ToggleExecutive(id)
		}

		if err != nil && !reflect.DeepEqual(before, s.Snapshot()) {
			t.Fatalf("step %d: failed operation changed state (%v)", i, err)
		}
		checkInvariants(t, s)
	}
}

func TestDescribe(t *testing.T) {
	code, key, ok := Describe(ErrCouncilCapacityExceeded)
	if !ok || code != "council_capacity_exceeded" || key != "voting.maxCouncilSelected" {
		t.Errorf("unexpected description: %q %q %v", code, key, ok)
	}

	if _, _, ok := Describe(errors.New("other")); ok {
		t.Error("Expected foreign error to be undescribed")
	}
}
