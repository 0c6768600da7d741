// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballot workflow API server.

The server hosts a single ballot: an administrator enrolls voters, voters
submit proposals and cast one vote each, and the administrator tallies the
result. Ties go to the lowest proposal index.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	BALLOT_ADMIN=0xadmin PRINCIPAL_SALT=... go run .

Or with flags:

	go run . -p 3318 -admin 0xadmin -principal-salt "..."

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - BALLOT_ADMIN (-admin): Administrator principal
  - PRINCIPAL_SALT (-principal-salt): Secret for caller signatures

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Notification journal database
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - BALLOT_TEST_MODE (-test-mode): Route POST /reset

# Signing Callers

Print the X-Principal-Signature value for a principal:

	go run . -principal-salt "..." -sign 0xvoter1

# Architecture

  - ballot: Workflow state machine, registries, tally, events
  - handlers: HTTP request handlers (voters, proposals, voting, workflow, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, caller resolution
  - models: Request/response types
  - auth: Principal signatures
  - db: Notification journal (sqlite or postgres)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
