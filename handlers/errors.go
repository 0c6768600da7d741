// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/middleware"
)

// statusFor maps ballot errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ballot.ErrUnauthorized),
		errors.Is(err, ballot.ErrNotAVoter),
		errors.Is(err, ballot.ErrResetDisabled):
		return http.StatusForbidden
	case errors.Is(err, ballot.ErrWrongPhase),
		errors.Is(err, ballot.ErrAlreadyRegistered),
		errors.Is(err, ballot.ErrNotRegistered),
		errors.Is(err, ballot.ErrAlreadyVoted),
		errors.Is(err, ballot.ErrNoProposals),
		errors.Is(err, ballot.ErrVotesNotTallied):
		return http.StatusConflict
	case errors.Is(err, ballot.ErrEmptyDescription),
		errors.Is(err, ballot.ErrInvalidPrincipal):
		return http.StatusBadRequest
	case errors.Is(err, ballot.ErrInvalidProposal):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ballotError writes err as a JSON error response
func ballotError(w http.ResponseWriter, err error) {
	middleware.ErrorResponse(w, statusFor(err), err.Error())
}

// requireCaller resolves the signed caller or writes a 401
func requireCaller(w http.ResponseWriter, r *http.Request, salt string) (ballot.Principal, bool) {
	caller, err := middleware.CallerFromRequest(r, salt)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return "", false
	}
	return caller, true
}
