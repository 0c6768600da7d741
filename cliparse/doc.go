// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - AdminPrincipal: The ballot administrator (required)
  - PrincipalSalt: Secret for caller signatures (required)
  - DatabaseURL: Notification journal database (optional)
  - DatabaseType: sqlite (default) or postgres
  - TestMode: Enables the workflow reset route

# CLI Flags

	-p               Server port
	-admin           Administrator principal
	-principal-salt  Principal signature salt
	-d               Journal database URL
	-t               Database type
	-test-mode       Enable workflow reset
	-sign            Print the signature for a principal and exit

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	BALLOT_ADMIN     → -admin
	PRINCIPAL_SALT   → -principal-salt
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	BALLOT_TEST_MODE → -test-mode

CLI flags take precedence over environment variables. LoadDotEnv reads a .env
file first without overriding variables that are already set.

# Validation

ParseFlags returns an error if required values are missing:

  - PRINCIPAL_SALT must be provided
  - BALLOT_ADMIN must be provided (except with -sign)
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
