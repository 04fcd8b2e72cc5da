// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"

	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/danielhkuo/council-ballot/models"
)

// Seat counts a complete ballot must fill exactly.
const (
	CouncilSeats   = 15
	ExecutiveSeats = 7
)

var (
	ErrUnknownCandidate          = errors.New("unknown candidate")
	ErrCouncilCapacityExceeded   = errors.New("council selection is full")
	ErrExecutiveCapacityExceeded = errors.New("executive selection is full")
	ErrNotCouncilMember          = errors.New("candidate must be selected for council first")
	ErrBallotIncomplete          = errors.New("ballot is incomplete")
)

// Directory reports whether a candidate id is eligible in the current election.
type Directory interface {
	Contains(id int) bool
}

// State is an in-progress ballot. It is valid by construction: every
// mutation either keeps all invariants or leaves the state untouched and
// returns an error.
//
// A State belongs to a single voting session and is not safe for
// concurrent use.
type State struct {
	dir       Directory
	council   *linkedhashset.Set
	executive *linkedhashset.Set
}

// Snapshot is a read-only copy of a State, in selection order.
type Snapshot struct {
	CouncilIDs   []int
	ExecutiveIDs []int
	Submittable  bool
}

// New returns an empty ballot that validates candidates against dir.
// dir must not be nil.
func New(dir Directory) *State {
	return &State{
		dir:       dir,
		council:   linkedhashset.New(),
		executive: linkedhashset.New(),
	}
}

// ToggleCouncil selects or deselects a council candidate. Deselecting also
// revokes executive status.
func (s *State) ToggleCouncil(id int) error {
	if !s.dir.Contains(id) {
		return ErrUnknownCandidate
	}

	if s.council.Contains(id) {
		s.council.Remove(id)
		s.executive.Remove(id)
		return nil
	}

	if s.council.Size() >= CouncilSeats {
		return ErrCouncilCapacityExceeded
	}
	s.council.Add(id)
	return nil
}

// ToggleExecutive marks or unmarks a council candidate as executive.
func (s *State) ToggleExecutive(id int) error {
	if !s.council.Contains(id) {
		return ErrNotCouncilMember
	}

	if s.executive.Contains(id) {
		s.executive.Remove(id)
		return nil
	}

	if s.executive.Size() >= ExecutiveSeats {
		return ErrExecutiveCapacityExceeded
	}
	s.executive.Add(id)
	return nil
}

// IsCouncil reports whether id is in the council selection.
func (s *State) IsCouncil(id int) bool { return s.council.Contains(id) }

// IsExecutive reports whether id is in the executive selection.
func (s *State) IsExecutive(id int) bool { return s.executive.Contains(id) }

// CouncilCount returns the number of council selections.
func (s *State) CouncilCount() int { return s.council.Size() }

// ExecutiveCount returns the number of executive selections.
func (s *State) ExecutiveCount() int { return s.executive.Size() }

// IsSubmittable reports whether both selections are exactly full.
func (s *State) IsSubmittable() bool {
	return s.council.Size() == CouncilSeats && s.executive.Size() == ExecutiveSeats
}

// Payload materializes the ballot for submission. The subset relation is
// checked again here since this is the last step before the vote leaves
// the session.
func (s *State) Payload() (models.BallotPayload, error) {
	if !s.IsSubmittable() {
		return models.BallotPayload{}, ErrBallotIncomplete
	}
	for _, v := range s.executive.Values() {
		if !s.council.Contains(v) {
			return models.BallotPayload{}, ErrNotCouncilMember
		}
	}

	return models.BallotPayload{
		CouncilIDs:   ids(s.council),
		ExecutiveIDs: ids(s.executive),
	}, nil
}

// Reset clears both selections.
func (s *State) Reset() {
	s.council.Clear()
	s.executive.Clear()
}

// Snapshot copies both selections in selection order.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CouncilIDs:   ids(s.council),
		ExecutiveIDs: ids(s.executive),
		Submittable:  s.IsSubmittable(),
	}
}

func ids(set *linkedhashset.Set) []int {
	values := set.Values()
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, v.(int))
	}
	return out
}
