// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/slot"
)

// SQLite implements slot.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ slot.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const selectSlots = `
	SELECT id, title, type, teacher, room, date, start_time, end_time, branch, note, color
	FROM slots
`

// ListSlots returns every stored slot in insertion order.
func (s *SQLite) ListSlots(ctx context.Context) ([]slot.Slot, error) {
	return s.querySlots(ctx, selectSlots+` ORDER BY seq`)
}

// ListSlotsByDateRange returns the slots dated within [start, end], inclusive.
func (s *SQLite) ListSlotsByDateRange(ctx context.Context, start, end time.Time) ([]slot.Slot, error) {
	return s.querySlots(ctx, selectSlots+` WHERE date >= ? AND date <= ? ORDER BY seq`,
		dateutil.DateKey(start),
		dateutil.DateKey(end),
	)
}

func (s *SQLite) querySlots(ctx context.Context, query string, args ...any) ([]slot.Slot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []slot.Slot
	for rows.Next() {
		var (
			sl   slot.Slot
			typ  string
			date string
		)
		if err := rows.Scan(
			&sl.ID,
			&sl.Title,
			&typ,
			&sl.Teacher,
			&sl.Room,
			&date,
			&sl.Time.Start,
			&sl.Time.End,
			&sl.Branch,
			&sl.Note,
			&sl.Color,
		); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}

		sl.Type = slot.Type(typ)
		sl.Date, err = parseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parsing date of slot %s: %w", sl.ID, err)
		}
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}

// ReplaceSlots atomically replaces the stored set.
// Either all slots are stored or none are.
func (s *SQLite) ReplaceSlots(ctx context.Context, slots []slot.Slot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots`); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}

	query := `
		INSERT INTO slots (
			id, title, type, teacher, room, date, start_time, end_time, branch, note, color
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sl := range slots {
		if _, err := stmt.ExecContext(ctx,
			sl.ID,
			sl.Title,
			string(sl.Type),
			sl.Teacher,
			sl.Room,
			dateutil.DateKey(sl.Date),
			sl.Time.Start,
			sl.Time.End,
			sl.Branch,
			sl.Note,
			sl.Color,
		); err != nil {
			return fmt.Errorf("inserting slot %s: %w", sl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// UpdateSlot overwrites the stored fields of a slot by ID.
// The insertion position is preserved.
func (s *SQLite) UpdateSlot(ctx context.Context, sl slot.Slot) error {
	query := `
		UPDATE slots
		SET title = ?, type = ?, teacher = ?, room = ?, date = ?,
		    start_time = ?, end_time = ?, branch = ?, note = ?, color = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		sl.Title,
		string(sl.Type),
		sl.Teacher,
		sl.Room,
		dateutil.DateKey(sl.Date),
		sl.Time.Start,
		sl.Time.End,
		sl.Branch,
		sl.Note,
		sl.Color,
		sl.ID,
	)
	if err != nil {
		return fmt.Errorf("updating slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return &slot.NotFoundError{ID: sl.ID}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseDate parses a date string in various formats SQLite might return.
// Dates are returned as local midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z" - extract date and parse as local
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return dateutil.TruncateToDay(t.In(time.Local)), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
