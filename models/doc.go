// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types.

# Upstream Types

Types mirrored from the election API:

  - Candidate: id, name, photo, bio, activity, field_of_activity, ...
  - Election, ElectionStatus: election metadata and open window
  - User, SessionInfo: the authenticated voter
  - Results, CandidateResult: council/executive tallies
  - BallotPayload: selectedCandidates, executiveCandidates

BallotPayload uses the upstream field names, so it can be posted as is:

	{"selectedCandidates": [1, 2, ...], "executiveCandidates": [1, ...]}

# Request Types

  - CreateElectionRequest: name, description, eligible_voter_emails
  - AddCandidateRequest: name, photo, bio, activity, field_of_activity
  - ScheduleElectionRequest: start_time, end_time

# Response Types

Types returned to the browser:

  - BallotView: current selections, counts, capacities, submittable
  - CandidateView: candidate plus selected/executive flags
  - SubmitBallotResponse: receipt_id, message
  - ResultsResponse: results with display strings
  - ErrorResponse: error, message, code

# Sort Orders

Candidate listings accept name-asc (default), name-desc, activity-desc
and activity-asc.
*/
package models
