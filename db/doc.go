// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the ballot notification log.

# Connecting

Open supports sqlite (modernc.org/sqlite, the default) and postgres (lib/pq):

	conn, err := db.Open(db.TypePostgres, "postgres://...")

# Schema Creation

CreateSchema initializes the journal table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

  - ballot_event: one row per notification, unique by (run_id, seq)

# Journal

Journal implements ballot.Sink. Publish never blocks: events go onto a
bounded queue and Run writes them in order. Events that do not fit in the
queue are dropped and counted, so delivery is at most once.

	j := db.NewJournal(conn, db.TypeSQLite, 1024)
	go j.Run(ctx)
	b, _ := ballot.New(ballot.Config{Administrator: admin, Sinks: []ballot.Sink{j}})
*/
package db
