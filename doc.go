// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the council ballot API server.

The server sits between the voting frontend and the election API. It keeps
one ballot per browser session and enforces the ballot rules locally: up
to 15 council members, up to 7 executive members chosen among them, and
submission only of a complete 15/7 ballot.

# Starting the Server

	ELECTION_API_URL=http://localhost:5000 SESSION_SALT=... go run .

Or with flags:

	go run . -p 3319 -api http://localhost:5000 -session-salt ... -t postgres -d "postgres://..."

A .env file in the working directory is read when present.

# Configuration

Required settings:

  - ELECTION_API_URL (-api): Base URL of the election API
  - SESSION_SALT (-session-salt): Secret for session cookie HMAC

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:ballot.db)
  - SESSION_TTL (-session-ttl): Idle session lifetime (default: 2h)

# Architecture

  - ballot: Ballot composition rules
  - session: Voting sessions and their manager
  - apiclient: Election API client
  - directory: Candidate directory cache
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - export: Results workbook
  - models: Wire and view types
  - auth: Session IDs and cookie signing
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
