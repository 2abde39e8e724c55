// Package journal keeps a session-only log of record mutations in an
// in-memory sqlite database. Nothing is written to disk.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action names a logged mutation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one journal row.
type Entry struct {
	ID        string
	At        time.Time
	Action    Action
	StudentID int
	Detail    string
}

// Journal records entries for the lifetime of the process.
type Journal struct {
	db *sql.DB
}

// Open creates the in-memory database and applies the schema.
func Open(ctx context.Context) (*Journal, error) {
	db, err := openMemory()
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal db: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal db: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close releases the database; all entries are lost.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores e, filling in ID and At when they are zero. It returns the
// stored entry.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = now()
	}
	_, err := j.db.ExecContext(ctx, `
	INSERT INTO entries(id, at, action, student_id, detail)
	VALUES (?, ?, ?, ?, ?)`, e.ID, e.At, string(e.Action), e.StudentID, e.Detail)
	if err != nil {
		return Entry{}, fmt.Errorf("record %s %d: %w", e.Action, e.StudentID, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
	SELECT id, at, action, student_id, detail
	FROM entries
	ORDER BY seq DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		var e Entry
		var action string
		if err := rows.Scan(&e.ID, &e.At, &action, &e.StudentID, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Action = Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}
