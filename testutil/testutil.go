// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/ballot-workflow/auth"
	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/db"
)

// Test principals
const (
	Admin    ballot.Principal = "0xadmin"
	Voter1   ballot.Principal = "0xvoter1"
	Voter2   ballot.Principal = "0xvoter2"
	Voter3   ballot.Principal = "0xvoter3"
	NonVoter ballot.Principal = "0xnobody"
)

// SetupTestDB creates a fresh sqlite journal database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		AdminPrincipal: string(Admin),
		PrincipalSalt:  "test-principal-salt",
		DatabaseType:   db.TypeSQLite,
		TestMode:       true,
	}
}

// NewTestBallot creates a ballot administered by cfg.AdminPrincipal
func NewTestBallot(t *testing.T, cfg cliparse.Config, sinks ...ballot.Sink) *ballot.Ballot {
	t.Helper()

	b, err := ballot.New(ballot.Config{
		Administrator: ballot.Principal(cfg.AdminPrincipal),
		TestMode:      cfg.TestMode,
		Sinks:         sinks,
	})
	if err != nil {
		t.Fatalf("Failed to create ballot: %v", err)
	}
	return b
}

// AdvanceTo drives b to the given phase, registering voters and one
// proposal per description along the way
func AdvanceTo(t *testing.T, b *ballot.Ballot, phase ballot.Phase, voters []ballot.Principal, descriptions ...string) {
	t.Helper()

	admin := b.Administrator()
	if err := b.RegisterVoters(admin, voters); err != nil {
		t.Fatalf("Failed to register voters: %v", err)
	}

	steps := []struct {
		to  ballot.Phase
		run func() error
	}{
		{ballot.ProposalsRegistrationStarted, func() error { return b.StartProposalsRegistration(admin) }},
		{ballot.ProposalsRegistrationEnded, func() error {
			for i, d := range descriptions {
				if _, err := b.RegisterProposal(voters[i%len(voters)], d); err != nil {
					return err
				}
			}
			return b.EndProposalsRegistration(admin)
		}},
		{ballot.VotingSessionStarted, func() error { return b.StartVotingSession(admin) }},
		{ballot.VotingSessionEnded, func() error { return b.EndVotingSession(admin) }},
		{ballot.VotesTallied, func() error { return b.CountVotes(admin) }},
	}
	for _, step := range steps {
		if b.Status() >= phase {
			return
		}
		if err := step.run(); err != nil {
			t.Fatalf("Failed to advance to %s: %v", step.to, err)
		}
	}
}

// CallerHeaders returns signed identity headers for principal
func CallerHeaders(cfg cliparse.Config, principal ballot.Principal) map[string]string {
	return map[string]string{
		"X-Principal":           string(principal),
		"X-Principal-Signature": auth.SignPrincipal(string(principal), cfg.PrincipalSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
