// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	AdminPrincipal string
	PrincipalSalt  string
	DatabaseURL    string
	DatabaseType   string
	TestMode       bool

	// SignPrincipal asks the server to print a caller signature and exit
	SignPrincipal string
}

// LoadDotEnv loads KEY=value pairs from the given files into the environment.
// Missing files are skipped and variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	flags := flag.NewFlagSet("ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.AdminPrincipal, "admin", "", "Administrator principal")

	// Journal database (optional)
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Journal database URL (empty disables the journal)")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.PrincipalSalt, "principal-salt", "", "Principal signature salt (prefer env)")

	flags.BoolVar(&cfg.TestMode, "test-mode", false, "Enable the workflow reset operation")
	flags.StringVar(&cfg.SignPrincipal, "sign", "", "Print the signature for a principal and exit")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if !cfg.TestMode {
		if v := os.Getenv("BALLOT_TEST_MODE"); v != "" {
			enabled, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid BALLOT_TEST_MODE env variable")
			}
			cfg.TestMode = enabled
		}
	}

	// Secrets - MUST be provided
	if cfg.PrincipalSalt == "" {
		cfg.PrincipalSalt = os.Getenv("PRINCIPAL_SALT")
	}
	if cfg.PrincipalSalt == "" {
		return Config{}, errors.New("PRINCIPAL_SALT required")
	}

	// Signing only needs the salt
	if cfg.SignPrincipal != "" {
		return cfg, nil
	}

	if cfg.AdminPrincipal == "" {
		cfg.AdminPrincipal = os.Getenv("BALLOT_ADMIN")
	}
	if cfg.AdminPrincipal == "" {
		return Config{}, errors.New("administrator principal required (use -admin or BALLOT_ADMIN env)")
	}

	return cfg, nil
}
