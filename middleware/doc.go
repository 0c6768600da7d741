// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /status", middleware.WithLogging(handler))

Logs request start (method, path, remote, principal) and completion (duration_ms).

# Caller Resolution

Mutating routes identify the caller with two headers:

	X-Principal:           0xvoter1
	X-Principal-Signature: <auth.SignPrincipal("0xvoter1", salt)>

CallerFromRequest validates the pair and returns the ballot principal.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusConflict, "voter has already voted")
	err := middleware.ParseJSONBody(r, &req)
*/
package middleware
