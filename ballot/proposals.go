// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"strings"
)

// Proposal is an entry in the proposal registry. Its ID is its insertion index.
type Proposal struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

// proposalRegistry is append-only; indexes are never reused.
type proposalRegistry struct {
	items []Proposal
}

func (r *proposalRegistry) count() uint64 {
	return uint64(len(r.items))
}

func (r *proposalRegistry) get(id uint64) (Proposal, error) {
	if id >= r.count() {
		return Proposal{}, fmt.Errorf("%w: %d (have %d)", ErrInvalidProposal, id, r.count())
	}
	return r.items[id], nil
}

func (r *proposalRegistry) add(description string) (uint64, error) {
	if strings.TrimSpace(description) == "" {
		return 0, ErrEmptyDescription
	}
	id := r.count()
	r.items = append(r.items, Proposal{ID: id, Description: description})
	return id, nil
}

func (r *proposalRegistry) addVote(id uint64) error {
	if id >= r.count() {
		return fmt.Errorf("%w: %d (have %d)", ErrInvalidProposal, id, r.count())
	}
	r.items[id].VoteCount++
	return nil
}

func (r *proposalRegistry) list() []Proposal {
	out := make([]Proposal, len(r.items))
	copy(out, r.items)
	return out
}

func (r *proposalRegistry) totalVotes() uint64 {
	var n uint64
	for _, p := range r.items {
		n += p.VoteCount
	}
	return n
}
