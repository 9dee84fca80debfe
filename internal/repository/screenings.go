package repository

import (
	"context"
	"log"

	"github.com/venuebook/ticketer/internal/model"
)

// LoadScreenings reads the screenings currently inside their active
// window, with their recurrence rules in declared order.  Screenings
// referencing an unknown movie or venue are skipped with a warning
// rather than aborting the load.
func (s *Store) LoadScreenings(ctx context.Context, movies map[string]model.Movie, venues map[int]model.Venue) ([]*model.Screening, error) {
	const q = `SELECT s.screening_id, s.movie_name, s.venue_no, s.start_date, s.end_date,
			t.screening_day, t.screening_time
		FROM screening s
		JOIN screening_time t ON t.screening_id = s.screening_id
		WHERE s.start_date < NOW() AND s.end_date > NOW()
		ORDER BY s.screening_id, t.position`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// The join repeats screening columns once per rule; fold the rows
	// back into one screening with an ordered rule list.
	var (
		screenings []*model.Screening
		current    *model.Screening
		skipID     int
	)
	for rows.Next() {
		var (
			id        int
			movieName string
			venueNo   int
			sc        model.Screening
			rule      model.ScreeningTime
		)
		if err := rows.Scan(&id, &movieName, &venueNo, &sc.Start, &sc.End, &rule.DayOfWeek, &rule.Clock); err != nil {
			return nil, err
		}
		if current != nil && current.ID == id {
			current.Times = append(current.Times, rule)
			continue
		}
		if id == skipID {
			continue
		}
		movie, ok := movies[movieName]
		if !ok {
			log.Printf("load: screening #%d references unknown movie %q; skipped", id, movieName)
			current, skipID = nil, id
			continue
		}
		venue, ok := venues[venueNo]
		if !ok {
			log.Printf("load: screening #%d references unknown venue %d; skipped", id, venueNo)
			current, skipID = nil, id
			continue
		}
		sc.ID = id
		sc.Movie = movie
		sc.Venue = venue
		sc.Times = []model.ScreeningTime{rule}
		current = &sc
		screenings = append(screenings, current)
	}
	return screenings, rows.Err()
}

// DeleteScreeningCascade removes a screening together with its rules
// and tickets, child rows first so the foreign keys hold.
func (s *Store) DeleteScreeningCascade(ctx context.Context, screeningID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range []string{
		`DELETE FROM screening_time WHERE screening_id = ?`,
		`DELETE FROM ticket WHERE screening_id = ?`,
		`DELETE FROM screening WHERE screening_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, screeningID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
