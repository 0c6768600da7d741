// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/danielhkuo/ballot-workflow/ballot"

// Request types

type RegisterVoterRequest struct {
	Principal string `json:"principal"`
}

type RegisterVotersRequest struct {
	Principals []string `json:"principals"`
}

type RegisterProposalRequest struct {
	Description string `json:"description"`
}

// proposal_id is a pointer so a missing field is told apart from 0
type VoteRequest struct {
	ProposalID *uint64 `json:"proposal_id"`
}

// Response types

type RegisterVotersResponse struct {
	Registered int `json:"registered"`
}

type RegisterProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
}

type VoterResponse struct {
	Principal       string  `json:"principal"`
	IsRegistered    bool    `json:"is_registered"`
	HasVoted        bool    `json:"has_voted"`
	VotedProposalID *uint64 `json:"voted_proposal_id,omitempty"`
}

type VotersResponse struct {
	Voters []VoterResponse `json:"voters"`
}

type ProposalsResponse struct {
	Count     uint64            `json:"count"`
	Proposals []ballot.Proposal `json:"proposals"`
}

type StatusResponse struct {
	Status         ballot.Phase `json:"status"`
	Administrator  string       `json:"administrator"`
	ProposalsCount uint64       `json:"proposals_count"`
	VotesCast      uint64       `json:"votes_cast"`
	TestMode       bool         `json:"test_mode"`
}

type AdminResponse struct {
	Administrator string `json:"administrator"`
}

type WorkflowResponse struct {
	Status ballot.Phase `json:"status"`
}

type WinnerResponse struct {
	ProposalID  uint64 `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

type EventsResponse struct {
	Events []ballot.Event `json:"events"`
	// Next is the since value for the following page
	Next    uint64 `json:"next"`
	HasMore bool   `json:"has_more"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewVoterResponse converts a voter record for the wire. voted_proposal_id is
// only present once the voter has voted.
func NewVoterResponse(v ballot.Voter) VoterResponse {
	resp := VoterResponse{
		Principal:    string(v.Principal),
		IsRegistered: v.Registered,
		HasVoted:     v.HasVoted,
	}
	if v.HasVoted {
		id := v.VotedProposalID
		resp.VotedProposalID = &id
	}
	return resp
}
