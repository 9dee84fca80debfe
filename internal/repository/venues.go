package repository

import (
	"context"

	"github.com/venuebook/ticketer/internal/model"
)

// LoadVenues reads every venue row.
func (s *Store) LoadVenues(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT venue_no, no_of_rows, no_of_cols FROM venue`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.Number, &v.Rows, &v.Cols); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
