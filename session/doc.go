// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns voting sessions and their ballots.

# Voting

Voting is the controller for one voter. It selects an election, forwards
ballot gestures to a ballot.State and gates submission:

	v.SelectElection(ctx, electionID)
	v.ToggleCouncil(12)
	v.ToggleExecutive(12)
	receipt, msg, err := v.Submit(ctx)

Submit checks, in order: an election is selected, it is open, the voter is
authenticated, the voter has not voted, and the ballot is complete. It
then calls the election API exactly once. Retrying is left to the user.

# Manager

Manager maps session IDs to Sessions. Every Session has its own API client
(and cookie jar) and its own Voting. Idle sessions expire after the
configured TTL; RunSweeper removes them in the background.

Gestures from one browser are serialised with Session.Lock, so a ballot
only ever sees one operation at a time.
*/
package session
