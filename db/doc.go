// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the local database and manages its schema.

# Drivers

Open picks the driver from Config.DatabaseType:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open(cfg)
	err = db.CreateSchema(conn)

# Tables

  - candidate: per-election cache of the election API candidate list
  - vote_receipt: ballots this client submitted, for the voter's own record

The election API remains the system of record for votes. Nothing here is
read back when counting.

Queries use $N placeholders, which both drivers accept.
*/
package db
