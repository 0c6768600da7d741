// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(b, cfg)

# Endpoints

Health:

	GET /health

Voter registry (admin writes, requires signed X-Principal):

	POST   /voters             - Register a voter
	POST   /voters/batch       - Register several voters, all or nothing
	DELETE /voters/{principal} - Unregister a voter
	GET    /voters/{principal} - Voter record
	GET    /voters             - All voter records

Proposals:

	POST /proposals      - Submit a proposal (registered voters)
	GET  /proposals      - Count and list
	GET  /proposals/{id} - Single proposal

Workflow (admin):

	POST /workflow/proposals/start
	POST /workflow/proposals/end
	POST /workflow/voting/start
	POST /workflow/voting/end
	POST /tally

Voting:

	POST /votes - Cast the caller's vote

Results (public):

	GET /status         - Current phase and counters
	GET /admin          - Administrator principal
	GET /winner         - Tally result (after /tally only)
	GET /events?since=N&limit=M - Notification log, paged (max 1000)

Testing:

	POST /reset - Only registered when the server runs with -test-mode
*/
package router
