package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS slots (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			id         TEXT NOT NULL UNIQUE,
			title      TEXT NOT NULL DEFAULT '',
			type       TEXT NOT NULL CHECK(type IN ('class', 'makeup', 'event')),
			teacher    TEXT NOT NULL DEFAULT '',
			room       TEXT NOT NULL DEFAULT '',
			date       DATE NOT NULL,
			start_time TIME NOT NULL,
			end_time   TIME NOT NULL,
			branch     TEXT NOT NULL DEFAULT '',
			note       TEXT NOT NULL DEFAULT '',
			color      TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_slots_date ON slots(date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating slots table: %w", err)
	}

	return nil
}
