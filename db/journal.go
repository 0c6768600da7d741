// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-workflow/ballot"
)

// Journal persists ballot events to the ballot_event table. It implements
// ballot.Sink: Publish only enqueues, and Run performs the inserts, so the
// ballot never waits on the database.
//
// Each Journal writes under its own run id, since event sequence numbers
// start over whenever a new ballot is created.
type Journal struct {
	db      *sql.DB
	dbType  string
	runID   string
	queue   chan ballot.Event
	dropped atomic.Uint64
}

// NewJournal creates a journal with room for buffer pending events.
func NewJournal(db *sql.DB, dbType string, buffer int) *Journal {
	if buffer <= 0 {
		buffer = 1024
	}
	return &Journal{
		db:     db,
		dbType: dbType,
		runID:  uuid.NewString(),
		queue:  make(chan ballot.Event, buffer),
	}
}

// RunID identifies the rows written by this journal.
func (j *Journal) RunID() string {
	return j.runID
}

// Publish enqueues ev. When the queue is full the event is dropped.
func (j *Journal) Publish(ev ballot.Event) {
	select {
	case j.queue <- ev:
	default:
		j.dropped.Add(1)
		slog.Warn("journal queue full, event dropped", "seq", ev.Seq, "kind", ev.Kind)
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (j *Journal) Dropped() uint64 {
	return j.dropped.Load()
}

// Run writes queued events until ctx is cancelled, then flushes whatever is
// still queued.
func (j *Journal) Run(ctx context.Context) {
	// inserts already dequeued must not fail because of the shutdown
	wctx := context.WithoutCancel(ctx)
	for {
		select {
		case ev := <-j.queue:
			j.write(wctx, ev)
		case <-ctx.Done():
			j.flush()
			return
		}
	}
}

func (j *Journal) flush() {
	for {
		select {
		case ev := <-j.queue:
			j.write(context.Background(), ev)
		default:
			return
		}
	}
}

func (j *Journal) write(ctx context.Context, ev ballot.Event) {
	if err := j.Append(ctx, ev); err != nil {
		slog.Error("failed to write journal event", "error", err, "seq", ev.Seq, "kind", ev.Kind)
	}
}

// Append inserts a single event synchronously.
func (j *Journal) Append(ctx context.Context, ev ballot.Event) error {
	var proposalID sql.NullInt64
	if ev.ProposalID != nil {
		proposalID = sql.NullInt64{Int64: int64(*ev.ProposalID), Valid: true}
	}

	_, err := j.db.ExecContext(ctx, j.rebind(`
		INSERT INTO ballot_event (id, run_id, seq, kind, principal, proposal_id, old_phase, new_phase, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`), uuid.NewString(), j.runID, int64(ev.Seq), string(ev.Kind), nullString(string(ev.Principal)),
		proposalID, nullPhase(ev.OldPhase), nullPhase(ev.NewPhase), ev.At.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event %d: %w", ev.Seq, err)
	}
	return nil
}

// Events reads back this run's journaled events with seq greater than since.
func (j *Journal) Events(ctx context.Context, since uint64) ([]ballot.Event, error) {
	rows, err := j.db.QueryContext(ctx, j.rebind(`
		SELECT seq, kind, principal, proposal_id, old_phase, new_phase, occurred_at
		FROM ballot_event
		WHERE run_id = $1 AND seq > $2
		ORDER BY seq
	`), j.runID, int64(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []ballot.Event{}
	for rows.Next() {
		var (
			ev                 ballot.Event
			seq                int64
			kind               string
			principal          sql.NullString
			proposalID         sql.NullInt64
			oldPhase, newPhase sql.NullString
		)
		if err := rows.Scan(&seq, &kind, &principal, &proposalID, &oldPhase, &newPhase, &ev.At); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Seq = uint64(seq)
		ev.Kind = ballot.EventKind(kind)
		ev.Principal = ballot.Principal(principal.String)
		if proposalID.Valid {
			id := uint64(proposalID.Int64)
			ev.ProposalID = &id
		}
		if ev.OldPhase, err = parseNullPhase(oldPhase); err != nil {
			return nil, err
		}
		if ev.NewPhase, err = parseNullPhase(newPhase); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// rebind rewrites $N placeholders to ? for sqlite.
func (j *Journal) rebind(query string) string {
	if j.dbType != TypeSQLite {
		return query
	}
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullPhase(p *ballot.Phase) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}

func parseNullPhase(s sql.NullString) (*ballot.Phase, error) {
	if !s.Valid {
		return nil, nil
	}
	p, err := ballot.ParsePhase(s.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt journal row: %w", err)
	}
	return &p, nil
}
