// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "errors"

type describedError struct {
	err  error
	code string
	key  string
}

var described = []describedError{
	{ErrUnknownCandidate, "unknown_candidate", "voting.unknownCandidate"},
	{ErrCouncilCapacityExceeded, "council_capacity_exceeded", "voting.maxCouncilSelected"},
	{ErrExecutiveCapacityExceeded, "executive_capacity_exceeded", "voting.maxExecutiveSelected"},
	{ErrNotCouncilMember, "not_council_member", "voting.selectAsCouncilFirst"},
	{ErrBallotIncomplete, "ballot_incomplete", "voting.ballotIncomplete"},
}

// Describe returns a stable error code and the translation key the
// frontend shows for a ballot rule violation. ok is false for errors that
// did not come from this package.
func Describe(err error) (code, messageKey string, ok bool) {
	for _, d := range described {
		if errors.Is(err, d.err) {
			return d.code, d.key, true
		}
	}
	return "", "", false
}
