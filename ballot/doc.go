// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot implements a single-organizer voting workflow.

An administrator enrolls voters, voters submit proposals, each voter casts one
vote, and the administrator tallies the result:

	b, err := ballot.New(ballot.Config{Administrator: "admin"})
	b.RegisterVoters("admin", []ballot.Principal{"v1", "v2"})
	b.StartProposalsRegistration("admin")
	id, err := b.RegisterProposal("v1", "Build a park")
	b.EndProposalsRegistration("admin")
	b.StartVotingSession("admin")
	b.Vote("v2", id)
	b.EndVotingSession("admin")
	b.CountVotes("admin")
	w, err := b.Winner()

# Phases

The workflow moves strictly forward:

	RegisteringVoters
	  -> ProposalsRegistrationStarted
	  -> ProposalsRegistrationEnded   (needs at least one proposal)
	  -> VotingSessionStarted
	  -> VotingSessionEnded
	  -> VotesTallied

Each mutation checks the phase first, then the caller's role. Calling an
operation in the wrong phase returns a *PhaseError, which matches ErrWrongPhase.

# Tally

Proposals are scanned in index order and only a strictly greater count takes
the lead, so ties go to the lowest index. A ProposalTie event is emitted when
more than one proposal shares the maximum; the winner is unchanged.

# Events

Every successful mutation appends events (VoterRegistered, VoterUnregistered,
ProposalRegistered, Voted, ProposalTie, WorkflowPhaseChanged) to an in-memory
log readable with Events, and forwards them to the configured Sinks.

# Testing

ResetForTesting returns to RegisteringVoters and clears all registries. It is
only available when Config.TestMode is set.
*/
package ballot
