// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "time"

// EventKind identifies a notification.
type EventKind string

const (
	VoterRegistered      EventKind = "VoterRegistered"
	VoterUnregistered    EventKind = "VoterUnregistered"
	ProposalRegistered   EventKind = "ProposalRegistered"
	Voted                EventKind = "Voted"
	ProposalTie          EventKind = "ProposalTie"
	WorkflowPhaseChanged EventKind = "WorkflowPhaseChanged"
)

// Event is one entry of the append-only notification log. Only the fields
// relevant to Kind are set.
type Event struct {
	Seq        uint64    `json:"seq"`
	Kind       EventKind `json:"kind"`
	Principal  Principal `json:"principal,omitempty"`
	ProposalID *uint64   `json:"proposal_id,omitempty"`
	OldPhase   *Phase    `json:"old_phase,omitempty"`
	NewPhase   *Phase    `json:"new_phase,omitempty"`
	At         time.Time `json:"at"`
}

// Sink receives every event in log order. Publish is called while the ballot
// holds its write lock, so implementations must not block or call back into
// the ballot.
type Sink interface {
	Publish(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Publish(ev Event) { f(ev) }

// pending collects the events of one operation. They reach the log only when
// the operation succeeds.
type pending []Event

func (p *pending) voter(kind EventKind, who Principal) {
	*p = append(*p, Event{Kind: kind, Principal: who})
}

func (p *pending) proposal(kind EventKind, who Principal, id uint64) {
	*p = append(*p, Event{Kind: kind, Principal: who, ProposalID: &id})
}

func (p *pending) phase(old, next Phase) {
	*p = append(*p, Event{Kind: WorkflowPhaseChanged, OldPhase: &old, NewPhase: &next})
}

func (p *pending) tie() {
	*p = append(*p, Event{Kind: ProposalTie})
}
