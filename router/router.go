// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballot-workflow/ballot"
	"github.com/danielhkuo/ballot-workflow/cliparse"
	"github.com/danielhkuo/ballot-workflow/handlers"
	"github.com/danielhkuo/ballot-workflow/middleware"
)

func NewRouter(b *ballot.Ballot, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(b, cfg)
	proposalHandler := handlers.NewProposalHandler(b, cfg)
	votingHandler := handlers.NewVotingHandler(b, cfg)
	workflowHandler := handlers.NewWorkflowHandler(b, cfg)
	resultsHandler := handlers.NewResultsHandler(b, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter registry (admin writes, public reads)
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.RegisterVoter))
	mux.HandleFunc("POST /voters/batch", middleware.WithLogging(voterHandler.RegisterVoters))
	mux.HandleFunc("DELETE /voters/{principal}", middleware.WithLogging(voterHandler.UnregisterVoter))
	mux.HandleFunc("GET /voters/{principal}", middleware.WithLogging(voterHandler.GetVoter))
	mux.HandleFunc("GET /voters", middleware.WithLogging(voterHandler.ListVoters))

	// Proposals (registered voters)
	mux.HandleFunc("POST /proposals", middleware.WithLogging(proposalHandler.RegisterProposal))
	mux.HandleFunc("GET /proposals", middleware.WithLogging(proposalHandler.ListProposals))
	mux.HandleFunc("GET /proposals/{id}", middleware.WithLogging(proposalHandler.GetProposal))

	// Workflow transitions (admin)
	mux.HandleFunc("POST /workflow/proposals/start", middleware.WithLogging(workflowHandler.Transition(ballot.StartProposalsRegistration)))
	mux.HandleFunc("POST /workflow/proposals/end", middleware.WithLogging(workflowHandler.Transition(ballot.EndProposalsRegistration)))
	mux.HandleFunc("POST /workflow/voting/start", middleware.WithLogging(workflowHandler.Transition(ballot.StartVotingSession)))
	mux.HandleFunc("POST /workflow/voting/end", middleware.WithLogging(workflowHandler.Transition(ballot.EndVotingSession)))
	mux.HandleFunc("POST /tally", middleware.WithLogging(workflowHandler.CountVotes))

	// Voting (registered voters)
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.Vote))

	// Results and state (public)
	mux.HandleFunc("GET /status", middleware.WithLogging(resultsHandler.GetStatus))
	mux.HandleFunc("GET /admin", middleware.WithLogging(resultsHandler.GetAdmin))
	mux.HandleFunc("GET /winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /events", middleware.WithLogging(resultsHandler.GetEvents))

	// Test-only escape hatch
	if cfg.TestMode && b.TestMode() {
		mux.HandleFunc("POST /reset", middleware.WithLogging(workflowHandler.Reset))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-workflow API v1"))
	})

	return mux
}
