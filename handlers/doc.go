// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballot API.

# Handler Types

Each handler is a struct with ballot and config dependencies:

  - VoterHandler: Voter registry (register, batch register, unregister, get, list)
  - ProposalHandler: Proposal submission and lookup
  - VotingHandler: Vote casting
  - WorkflowHandler: Phase transitions, tally, and the test-only reset
  - ResultsHandler: Status, administrator, winner, and the event log

Handlers are created via constructor functions:

	voterHandler := handlers.NewVoterHandler(b, cfg)

# Callers

Mutating requests carry X-Principal and X-Principal-Signature. A missing or
bad signature is rejected with 401 before the ballot is consulted. The ballot
then checks the phase and the caller's role.

# Errors

Ballot errors map to status codes:

	403  not the administrator, not a registered voter, reset disabled
	409  wrong phase, already registered, not registered, already voted,
	     no proposals, votes not tallied
	400  empty description, empty principal, malformed request
	404  proposal index out of range

The message of the error response is the ballot error text, e.g.
"registerProposal: proposals registration is not open (requires
ProposalsRegistrationStarted, current RegisteringVoters)".
*/
package handlers
