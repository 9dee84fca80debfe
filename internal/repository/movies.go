package repository

import (
	"context"

	"github.com/venuebook/ticketer/internal/model"
)

// LoadMovies reads every movie row.
func (s *Store) LoadMovies(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT name, genre, running_time, release_year FROM movie`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.Title, &m.Genre, &m.RunningTime, &m.ReleaseYear); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
