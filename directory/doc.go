// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package directory is the candidate directory a ballot validates against.

Store keeps a per-election cache of the election API candidate list:

	store := directory.NewStore(db)
	candidates, err := store.Refresh(ctx, electionID, apiClient)
	list, err := store.List(ctx, electionID, directory.Query{Search: "health", Sort: "activity-desc"})

Search matches name or field of activity, case-insensitively. Sort accepts
name-asc (default), name-desc, activity-desc and activity-asc; activity
orders break ties by name.

Roster is the in-memory id set built from a refreshed list. Ballots check
membership against a Roster, so ballot operations never touch the database.
*/
package directory
