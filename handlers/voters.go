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

type VoterHandler struct {
	ballot *ballot.Ballot
	cfg    cliparse.Config
}

func NewVoterHandler(b *ballot.Ballot, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{ballot: b, cfg: cfg}
}

// RegisterVoter handles POST /voters
func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Principal == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "principal is required")
		return
	}

	target := ballot.Principal(req.Principal)
	if err := h.ballot.RegisterVoter(caller, target); err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("voter registered", "principal", target)

	middleware.JSONResponse(w, http.StatusCreated, models.NewVoterResponse(h.ballot.Voter(target)))
}

// RegisterVoters handles POST /voters/batch
func (h *VoterHandler) RegisterVoters(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	var req models.RegisterVotersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Principals) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "principals cannot be empty")
		return
	}

	targets := make([]ballot.Principal, len(req.Principals))
	for i, p := range req.Principals {
		targets[i] = ballot.Principal(p)
	}
	if err := h.ballot.RegisterVoters(caller, targets); err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("voters registered", "count", len(targets))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVotersResponse{
		Registered: len(targets),
	})
}

// UnregisterVoter handles DELETE /voters/{principal}
func (h *VoterHandler) UnregisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r, h.cfg.PrincipalSalt)
	if !ok {
		return
	}

	target := ballot.Principal(r.PathValue("principal"))
	if err := h.ballot.UnregisterVoter(caller, target); err != nil {
		ballotError(w, err)
		return
	}

	slog.Info("voter unregistered", "principal", target)

	middleware.JSONResponse(w, http.StatusOK, models.NewVoterResponse(h.ballot.Voter(target)))
}

// GetVoter handles GET /voters/{principal}
func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("principal")
	if target == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "principal is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewVoterResponse(h.ballot.Voter(ballot.Principal(target))))
}

// ListVoters handles GET /voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters := h.ballot.Voters()

	resp := models.VotersResponse{Voters: make([]models.VoterResponse, 0, len(voters))}
	for _, v := range voters {
		resp.Voters = append(resp.Voters, models.NewVoterResponse(v))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
