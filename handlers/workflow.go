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

type WorkflowHandler struct {
	ballot *ballot.Ballot
	cfg    cliparse.Config
}

func NewWorkflowHandler(b *ballot.Ballot, cfg cliparse.Config) *WorkflowHandler {
	return &WorkflowHandler{ballot: b, cfg: cfg}
}

// Transition returns a handler that fires t, e.g. POST /workflow/voting/start
func (h *WorkflowHandler) Transition(t ballot.Transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
		if !ok {
			return
		}

		from, status, err := h.ballot.Step(caller, t)
		if err != nil {
			ballotError(w, err)
			return
		}

		slog.Info("workflow advanced", "transition", t, "from", from, "to", status)

		middleware.JSONResponse(w, http.StatusOK, models.WorkflowResponse{Status: status})
	}
}

// CountVotes handles POST /tally
func (h *WorkflowHandler) CountVotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	if err := h.ballot.CountVotes(caller); err != nil {
		ballotError(w, err)
		return
	}

	winner, err := h.ballot.Winner()
	if err != nil {
		// another request reset the ballot in between
		ballotError(w, err)
		return
	}

	slog.Info("votes tallied", "proposal_id", winner.ProposalID, "vote_count", winner.VoteCount)

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse(winner))
}

// Reset handles POST /reset. Only routed in test mode.
func (h *WorkflowHandler) Reset(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	if err := h.ballot.ResetForTesting(caller); err != nil {
		ballotError(w, err)
		return
	}

	slog.Warn("workflow reset for testing", "principal", caller)

	middleware.JSONResponse(w, http.StatusOK, models.WorkflowResponse{Status: h.ballot.Status()})
}
