// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/models"
	"github.com/danielhkuo/ballot-workflow/testutil"
)

func TestRegisterProposal(t *testing.T) {
	cfg := testutil.GetTestConfig()
	b := testutil.NewTestBallot(t, cfg)
	handler := NewProposalHandler(b, cfg)

	testutil.AdvanceTo(t, b, ballot.ProposalsRegistrationStarted, []ballot.Principal{testutil.Voter1, testutil.Voter2})

	tests := []struct {
		name           string
		caller         ballot.Principal
		description    string
		expectedStatus int
		expectedID     uint64
	}{
		{"first proposal", testutil.Voter1, "Proposal 1", http.StatusCreated, 0},
		{"second proposal", testutil.Voter2, "Proposal 2", http.StatusCreated, 1},
		{"non voter", testutil.NonVoter, "Proposal 3", http.StatusForbidden, 0},
		{"empty description", testutil.Voter1, "", http.StatusBadRequest, 0},
		{"whitespace description", testutil.Voter1, "   ", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/proposals", models.RegisterProposalRequest{Description: tt.description},
				testutil.CallerHeaders(cfg, tt.caller))
			w := httptest.NewRecorder()

			handler.RegisterProposal(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var resp models.RegisterProposalResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ProposalID != tt.expectedID {
					t.Errorf("Expected proposal_id %d, got %d", tt.expectedID, resp.ProposalID)
				}
			}
		})
	}

	if b.ProposalsCount() != 2 {
		t.Errorf("Expected 2 proposals, got %d", b.ProposalsCount())
	}
}

func TestRegisterProposalWrongPhase(t *testing.T) {
	cfg := testutil.GetTestConfig()
	b := testutil.NewTestBallot(t, cfg)
	handler := NewProposalHandler(b, cfg)

	if err := b.RegisterVoter(testutil.Admin, testutil.Voter1); err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("POST", "/proposals", models.RegisterProposalRequest{Description: "Too early"},
		testutil.CallerHeaders(cfg, testutil.Voter1))
	w := httptest.NewRecorder()
	handler.RegisterProposal(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Error != "Conflict" || errResp.Message == "" {
		t.Errorf("Unexpected error response %+v", errResp)
	}
}

func TestGetProposal(t *testing.T) {
	cfg := testutil.GetTestConfig()
	b := testutil.NewTestBallot(t, cfg)
	handler := NewProposalHandler(b, cfg)

	testutil.AdvanceTo(t, b, ballot.ProposalsRegistrationEnded, []ballot.Principal{testutil.Voter1}, "Build a park", "Fix the roads")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{"first", "0", http.StatusOK},
		{"second", "1", http.StatusOK},
		{"out of range", "2", http.StatusNotFound},
		{"negative", "-1", http.StatusBadRequest},
		{"not a number", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/proposals/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetProposal(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := httptest.NewRecorder()
	handler.ListProposals(w, testutil.MakeRequest("GET", "/proposals", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var list models.ProposalsResponse
	testutil.AssertJSON(t, w, &list)
	if list.Count != 2 || list.Proposals[1].Description != "Fix the roads" || list.Proposals[1].ID != 1 {
		t.Errorf("Unexpected proposals %+v", list)
	}
}
