// Package storage persists the dispatch journal: one row per record
// outcome. Session state is never written here; only what happened to
// each slip survives a restart.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// JournalEntry is one journaled dispatch outcome.
type JournalEntry struct {
	ID           int64
	SlotIndex    int
	Name         string
	Recipient    string
	AmountCents  int64
	Artifact     string
	Sent         bool
	Error        string
	DispatchedAt time.Time
}

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Append writes one outcome row and returns its journal ID.
func (j *SQLiteJournal) Append(ctx context.Context, e JournalEntry) (int64, error) {
	dispatchedAt := e.DispatchedAt
	if dispatchedAt.IsZero() {
		dispatchedAt = time.Now().UTC()
	}

	res, err := j.db.ExecContext(ctx,
		`INSERT INTO dispatch_journal (slot_index, name, recipient, amount_cents, artifact, sent, error, dispatched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SlotIndex, e.Name, e.Recipient, e.AmountCents, e.Artifact, boolToInt(e.Sent), e.Error, dispatchedAt)
	if err != nil {
		return 0, fmt.Errorf("insert journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal entry id: %w", err)
	}

	slog.InfoContext(ctx, "Dispatch outcome journaled",
		"journal_id", id,
		"slot_index", e.SlotIndex,
		"name", e.Name,
		"sent", e.Sent)

	return id, nil
}

// ListRecent returns up to limit entries, newest first.
func (j *SQLiteJournal) ListRecent(ctx context.Context, limit int) ([]JournalEntry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, slot_index, name, recipient, amount_cents, artifact, sent, error, dispatched_at
		 FROM dispatch_journal
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var sent int
		if err := rows.Scan(&e.ID, &e.SlotIndex, &e.Name, &e.Recipient, &e.AmountCents, &e.Artifact, &sent, &e.Error, &e.DispatchedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Sent = sent != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}

	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
