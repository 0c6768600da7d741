// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"sort"
)

// Voter is the record kept for a principal. VotedProposalID is meaningful
// only when HasVoted is true.
type Voter struct {
	Principal       Principal `json:"principal"`
	Registered      bool      `json:"is_registered"`
	HasVoted        bool      `json:"has_voted"`
	VotedProposalID uint64    `json:"voted_proposal_id"`
}

type voterRegistry struct {
	records map[Principal]Voter
}

func newVoterRegistry() *voterRegistry {
	return &voterRegistry{records: make(map[Principal]Voter)}
}

// get returns the record for p, or the unregistered default.
func (r *voterRegistry) get(p Principal) Voter {
	if v, ok := r.records[p]; ok {
		return v
	}
	return Voter{Principal: p}
}

// checkRegister validates a batch without touching the registry.
func (r *voterRegistry) checkRegister(targets []Principal) error {
	seen := make(map[Principal]struct{}, len(targets))
	for _, p := range targets {
		if p == "" {
			return ErrInvalidPrincipal
		}
		if _, dup := seen[p]; dup || r.get(p).Registered {
			return fmt.Errorf("%w: %s", ErrAlreadyRegistered, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func (r *voterRegistry) register(p Principal) {
	v := r.get(p)
	v.Registered = true
	r.records[p] = v
}

func (r *voterRegistry) unregister(p Principal) error {
	v := r.get(p)
	if !v.Registered {
		return fmt.Errorf("%w: %s", ErrNotRegistered, p)
	}
	// vote history stays; only future eligibility is revoked
	v.Registered = false
	r.records[p] = v
	return nil
}

func (r *voterRegistry) markVoted(p Principal, proposalID uint64) {
	v := r.get(p)
	v.HasVoted = true
	v.VotedProposalID = proposalID
	r.records[p] = v
}

// list returns every known record sorted by principal.
func (r *voterRegistry) list() []Voter {
	out := make([]Voter, 0, len(r.records))
	for _, v := range r.records {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out
}

func (r *voterRegistry) votedCount() uint64 {
	var n uint64
	for _, v := range r.records {
		if v.HasVoted {
			n++
		}
	}
	return n
}
