// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/middleware"
	"github.com/danielhkuo/ballot-workflow/models"
)

type ResultsHandler struct {
	ballot *ballot.Ballot
	cfg    cliparse.Config
}

func NewResultsHandler(b *ballot.Ballot, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{ballot: b, cfg: cfg}
}

// GetStatus handles GET /status
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	// One snapshot so the counters agree with the phase
	s := h.ballot.Snapshot()

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:         s.Phase,
		Administrator:  string(s.Administrator),
		ProposalsCount: uint64(len(s.Proposals)),
		VotesCast:      s.VotesCast,
		TestMode:       h.ballot.TestMode(),
	})
}

// GetAdmin handles GET /admin
func (h *ResultsHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.AdminResponse{
		Administrator: string(h.ballot.Administrator()),
	})
}

// GetWinner handles GET /winner
// Results are sealed until the votes are tallied
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.ballot.Winner()
	if err != nil {
		ballotError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse(winner))
}

// Page sizes for GET /events
const (
	DefaultEventsLimit = 100
	MaxEventsLimit     = 1000
)

// GetEvents handles GET /events?since=N&limit=M
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if s := r.URL.Query().Get("since"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "since must be a non-negative integer")
			return
		}
		since = n
	}

	limit := DefaultEventsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxEventsLimit)
	}

	events, more := h.ballot.EventsPage(since, limit)
	next := since
	if len(events) > 0 {
		next = events[len(events)-1].Seq
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{
		Events:  events,
		Next:    next,
		HasMore: more,
	})
}
