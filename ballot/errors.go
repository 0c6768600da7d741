// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized      = errors.New("caller is not the administrator")
	ErrNotAVoter         = errors.New("caller is not a registered voter")
	ErrWrongPhase        = errors.New("operation not allowed in current phase")
	ErrAlreadyRegistered = errors.New("voter is already registered")
	ErrNotRegistered     = errors.New("voter is not registered")
	ErrEmptyDescription  = errors.New("proposal description cannot be empty")
	ErrInvalidProposal   = errors.New("invalid proposal")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrNoProposals       = errors.New("cannot end proposals registration without proposals")
	ErrVotesNotTallied   = errors.New("votes have not been tallied yet")
	ErrInvalidPrincipal  = errors.New("principal cannot be empty")
	ErrResetDisabled     = errors.New("workflow reset is only available in test mode")
)

// PhaseError is returned when an operation is invoked outside the phase it
// requires. It matches ErrWrongPhase under errors.Is.
type PhaseError struct {
	Op       string
	Required Phase
	Current  Phase
	Message  string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s (requires %s, current %s)", e.Op, e.Message, e.Required, e.Current)
}

func (e *PhaseError) Unwrap() error {
	return ErrWrongPhase
}
