// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
)

// Phase is the current step of the workflow. Phases are totally ordered and
// only ever advance through the transitions table.
type Phase uint8

const (
	RegisteringVoters Phase = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var phaseNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	VotesTallied:                 "VotesTallied",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Valid reports whether p is one of the six workflow phases.
func (p Phase) Valid() bool {
	return int(p) < len(phaseNames)
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// Transition names a forward workflow step.
type Transition string

const (
	StartProposalsRegistration Transition = "startProposalsRegistration"
	EndProposalsRegistration   Transition = "endProposalsRegistration"
	StartVotingSession         Transition = "startVotingSession"
	EndVotingSession           Transition = "endVotingSession"
	CountVotes                 Transition = "countVotes"
)

type transitionRule struct {
	from, to Phase
	// reported when called from any other phase
	message string
}

var transitions = map[Transition]transitionRule{
	StartProposalsRegistration: {RegisteringVoters, ProposalsRegistrationStarted, "voters registration is not in progress"},
	EndProposalsRegistration:   {ProposalsRegistrationStarted, ProposalsRegistrationEnded, "proposals registration has not started"},
	StartVotingSession:         {ProposalsRegistrationEnded, VotingSessionStarted, "proposals registration has not ended yet"},
	EndVotingSession:           {VotingSessionStarted, VotingSessionEnded, "voting session has not started"},
	CountVotes:                 {VotingSessionEnded, VotesTallied, "voting session has not ended yet"},
}

// Next returns the phase t leads to and the phase it must start from.
func (t Transition) Next() (from, to Phase, ok bool) {
	rule, ok := transitions[t]
	return rule.from, rule.to, ok
}

// checkTransition validates that t may fire from current.
func checkTransition(t Transition, current Phase) (Phase, error) {
	rule, ok := transitions[t]
	if !ok {
		return current, fmt.Errorf("unknown transition %q", t)
	}
	if current != rule.from {
		return current, &PhaseError{Op: string(t), Required: rule.from, Current: current, Message: rule.message}
	}
	return rule.to, nil
}

// requirePhase is the gate for non-transition mutations.
func requirePhase(op string, required, current Phase, message string) error {
	if current != required {
		return &PhaseError{Op: op, Required: required, Current: current, Message: message}
	}
	return nil
}
