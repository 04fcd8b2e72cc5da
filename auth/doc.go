// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session token and ID generation utilities.

# Session Tokens

Each voting session is identified by a random UUID. The cookie carries the
ID together with an HMAC-SHA256 signature:

	id := auth.NewSessionID()
	token := auth.SignSessionID(id, salt)
	id, err := auth.ValidateSessionToken(token, salt)

The signature is URL-safe base64 encoded without padding. Since it's
deterministic, the same ID and salt always produce the same token, so
nothing about the token needs to be stored.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
