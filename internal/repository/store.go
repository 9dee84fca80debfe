// Package repository contains the MySQL storage collaborator.  The
// engine loads everything through it once at startup and mirrors
// incremental changes (new bookings, deletions, purges) back through
// it; it never reads from the database after the initial load.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound indicates a delete matched no rows.
var ErrNotFound = errors.New("not found")

// Store wraps the MySQL handle and implements bulk loading plus the
// incremental persistence operations the engine writes through
// (engine.Storage).
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying sql.DB for lifecycle management.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the five tables if they do not exist yet, so a
// fresh database is usable without a separate migration step.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS movie (
			name         CHAR(60) NOT NULL,
			genre        CHAR(20) NOT NULL,
			running_time SMALLINT UNSIGNED NOT NULL,
			release_year SMALLINT UNSIGNED NOT NULL,
			PRIMARY KEY (name),
			CHECK (running_time > 0),
			CHECK (release_year > 1900)
		)`,
		`CREATE TABLE IF NOT EXISTS venue (
			venue_no   SMALLINT UNSIGNED NOT NULL,
			no_of_rows TINYINT UNSIGNED NOT NULL DEFAULT 18,
			no_of_cols TINYINT UNSIGNED NOT NULL DEFAULT 30,
			PRIMARY KEY (venue_no),
			CHECK (venue_no > 0),
			CHECK (no_of_rows > 0),
			CHECK (no_of_cols > 0)
		)`,
		`CREATE TABLE IF NOT EXISTS screening (
			screening_id INT UNSIGNED NOT NULL AUTO_INCREMENT,
			movie_name   CHAR(60) NOT NULL,
			venue_no     SMALLINT UNSIGNED NOT NULL,
			start_date   DATETIME NOT NULL,
			end_date     DATETIME NOT NULL,
			PRIMARY KEY (screening_id),
			FOREIGN KEY (movie_name) REFERENCES movie (name),
			FOREIGN KEY (venue_no) REFERENCES venue (venue_no),
			CHECK (start_date < end_date)
		)`,
		`CREATE TABLE IF NOT EXISTS screening_time (
			screening_id  INT UNSIGNED NOT NULL,
			position      TINYINT UNSIGNED NOT NULL,
			screening_day CHAR(9) NOT NULL,
			screening_time CHAR(5) NOT NULL,
			PRIMARY KEY (screening_id, position),
			FOREIGN KEY (screening_id) REFERENCES screening (screening_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ticket (
			screening_id   INT UNSIGNED NOT NULL,
			selected_date  DATETIME NOT NULL,
			allocated_seat CHAR(4) NOT NULL,
			username       CHAR(16) NOT NULL,
			PRIMARY KEY (screening_id, selected_date, allocated_seat),
			FOREIGN KEY (screening_id) REFERENCES screening (screening_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
