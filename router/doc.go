// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the council ballot API.

# Route Registration

	mux := router.NewRouter(db, sessions, cfg)

# Endpoints

Health:

	GET /health

Session (cookie ballot_session):

	POST /session/demo   - Demo login, starts a voting session
	GET  /session        - Current user
	POST /session/logout - End the session

Elections and candidates:

	GET  /elections             - List elections
	POST /elections             - Create election
	POST /elections/{id}/select - Select election, start an empty ballot
	GET  /candidates?q=&sort=   - Candidate directory with ballot flags

Ballot:

	GET    /ballot                       - Current ballot
	POST   /ballot/council/{candidate}   - Toggle council selection
	POST   /ballot/executive/{candidate} - Toggle executive selection
	DELETE /ballot                       - Clear ballot
	POST   /ballot/submit                - Submit a complete 15/7 ballot
	GET    /ballot/receipts              - Local receipts

Results:

	GET /results             - Ranked results (closed elections)
	GET /results/export.xlsx - Results workbook

Administration:

	GET    /admin/candidates             - List candidates
	POST   /admin/candidates             - Add candidate
	DELETE /admin/candidates/{candidate} - Remove candidate
	POST   /admin/election/toggle        - Open or close
	POST   /admin/election/schedule      - Set voting window
	GET    /admin/votes/export[/csv]     - Vote export passthrough
*/
package router
