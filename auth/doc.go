// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth signs and verifies caller principals.

# Principal Signatures

The ballot core trusts whatever principal it is handed. At the HTTP boundary
callers prove their principal with an HMAC-SHA256 signature:

	sig := auth.SignPrincipal("0xvoter1", salt)
	err := auth.ValidatePrincipal("0xvoter1", sig, salt)

Signatures are URL-safe base64 without padding. They are deterministic, so the
server validates them without storing anything. Operators hand signatures out
of band (see the -sign flag of the server).
*/
package auth
