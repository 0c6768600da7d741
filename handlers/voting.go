// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/middleware"
	"github.com/danielhkuo/ballot-workflow/models"
)

type VotingHandler struct {
	ballot *ballot.Ballot
	cfg    cliparse.Config
}

func NewVotingHandler(b *ballot.Ballot, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{ballot: b, cfg: cfg}
}

// Vote handles POST /votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	if err := h.ballot.Vote(caller, *req.ProposalID); err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("vote cast", "principal", caller, "proposal_id", *req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.NewVoterResponse(h.ballot.Voter(caller)))
}
