package repository

import (
	"context"
	"log"
)

// Prefill seeds an empty database with demonstration data: a handful
// of movies, two venues, and screenings with weekly showing rules
// whose windows straddle the current date.  It does nothing when the
// movie table already has rows, so it is safe to call on every start.
func (s *Store) Prefill(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movie`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("prefill: empty database, seeding demonstration data")

	stmts := []string{
		`INSERT INTO movie (name, genre, running_time, release_year) VALUES
			('Night Shift', 'Horror', 102, 2024),
			('Punchline', 'Comedy', 95, 2023),
			('Starfall', 'Sci-Fi', 138, 2025),
			('The Long Road', 'Drama', 124, 2022),
			('Second Punchline', 'Comedy', 98, 2025)`,
		`INSERT INTO venue (venue_no, no_of_rows, no_of_cols) VALUES
			(1, 18, 30),
			(2, 10, 12)`,
		`INSERT INTO screening (screening_id, movie_name, venue_no, start_date, end_date) VALUES
			(1, 'Night Shift', 1, NOW() - INTERVAL 7 DAY, NOW() + INTERVAL 21 DAY),
			(2, 'Punchline', 2, NOW() - INTERVAL 3 DAY, NOW() + INTERVAL 30 DAY),
			(3, 'Starfall', 1, NOW() - INTERVAL 1 DAY, NOW() + INTERVAL 45 DAY),
			(4, 'The Long Road', 2, NOW() - INTERVAL 14 DAY, NOW() + INTERVAL 7 DAY),
			(5, 'Second Punchline', 1, NOW() - INTERVAL 2 DAY, NOW() + INTERVAL 28 DAY)`,
		`INSERT INTO screening_time (screening_id, position, screening_day, screening_time) VALUES
			(1, 1, 'Friday', '21:00'),
			(1, 2, 'Saturday', '23:30'),
			(2, 1, 'Monday', '18:00'),
			(2, 2, 'Wednesday', '18:00'),
			(2, 3, 'Saturday', '15:30'),
			(3, 1, 'Tuesday', '19:45'),
			(3, 2, 'Sunday', '14:00'),
			(4, 1, 'Thursday', '17:15'),
			(5, 1, 'Monday', '20:30'),
			(5, 2, 'Friday', '20:30')`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
