// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/middleware"
	"github.com/danielhkuo/ballot-workflow/models"
)

type ProposalHandler struct {
	ballot *ballot.Ballot
	cfg    cliparse.Config
}

func NewProposalHandler(b *ballot.Ballot, cfg cliparse.Config) *ProposalHandler {
	return &ProposalHandler{ballot: b, cfg: cfg}
}

// RegisterProposal handles POST /proposals
func (h *ProposalHandler) RegisterProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	var req models.RegisterProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Empty descriptions are rejected by the ballot itself
	id, err := h.ballot.RegisterProposal(caller, req.Description)
	if err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("proposal registered", "proposal_id", id, "principal", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterProposalResponse{
		ProposalID: id,
	})
}

// ListProposals handles GET /proposals
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals := h.ballot.Proposals()

	middleware.JSONResponse(w, http.StatusOK, models.ProposalsResponse{
		Count:     uint64(len(proposals)),
		Proposals: proposals,
	})
}

// GetProposal handles GET /proposals/{id}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be a non-negative integer")
		return
	}

	proposal, err := h.ballot.Proposal(id)
	if err != nil {
		ballotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposal)
}
