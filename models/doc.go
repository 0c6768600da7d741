// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: principal
  - RegisterVotersRequest: principals
  - RegisterProposalRequest: description
  - VoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - VoterResponse / VotersResponse: voter records
  - ProposalsResponse: count and proposals in index order
  - StatusResponse: current phase and counters
  - WorkflowResponse: phase after a transition
  - WinnerResponse: proposal_id, description, vote_count
  - EventsResponse: notification log entries
  - ErrorResponse: error, message

Domain types (Proposal, Phase, Event) come from package ballot and are
encoded as-is. Phases are encoded by name, e.g. "VotingSessionStarted".
*/
package models
