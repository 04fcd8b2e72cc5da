// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is a client for the upstream election REST API.

# Sessions

The API authenticates with a cookie set at login, so a Client carries its
own cookie jar and must not be shared between voting sessions:

	c, err := apiclient.New("https://elections.example.org")
	info, err := c.DemoLogin(ctx)

# Election Scoped Calls

Most endpoints live under /api/elections/{id}. Those methods take the
election ID and return ErrNoElection when it is empty.

# Errors

Non-2xx replies become *APIError with the upstream "message" field. Vote
submission failures can be classified with IsAlreadyVoted and
IsElectionClosed.
*/
package apiclient
