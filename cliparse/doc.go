// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - APIBaseURL: Election API base URL (required)
  - DatabaseURL: Candidate cache / receipt database (default: file:ballot.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSalt: Secret for session cookie HMAC (required)
  - SessionTTL: Idle session lifetime (default: 2h)

# CLI Flags

	-p              Server port
	-api            Election API base URL
	-d              Database URL
	-t              Database type
	-session-salt   Session cookie salt
	-session-ttl    Idle session lifetime
	-env-file       Dotenv file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	ELECTION_API_URL → -api
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SESSION_SALT     → -session-salt
	SESSION_TTL      → -session-ttl

CLI flags take precedence over environment variables. Variables from the
dotenv file are loaded with godotenv and never override variables that are
already set. A missing dotenv file is ignored.
*/
package cliparse
