// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the council ballot API.

# Handler Types

Each handler is a struct holding the session manager and config:

  - SessionHandler: demo login, session check, logout
  - ElectionHandler: list, create and select elections
  - CandidateHandler: searchable, sortable candidate listing
  - BallotHandler: council/executive toggles, reset, submit, receipts
  - ResultsHandler: ranked results and xlsx export
  - AdminHandler: candidate management, open/close, schedule, vote export

	ballotHandler := handlers.NewBallotHandler(sessions, cfg)

# Sessions

POST /session/demo logs in upstream and sets the signed ballot_session
cookie. Every other handler resolves the session from that cookie and
holds the session lock for the duration of the request, so gestures of
one voter are applied one at a time.

# Ballot Flow

	POST   /ballot/council/{candidate}   → ToggleCouncil
	POST   /ballot/executive/{candidate} → ToggleExecutive
	DELETE /ballot                       → ResetBallot
	POST   /ballot/submit                → SubmitBallot

Toggles answer with the updated BallotView. Rule violations are 422 with a
stable code and the frontend translation key:

	{"error":"Unprocessable Entity","message":"voting.maxCouncilSelected","code":"council_capacity_exceeded"}

No election, a closed election and a repeat vote are 409. Upstream API
errors keep their status and message.
*/
package handlers
