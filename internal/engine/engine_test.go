package engine

import (
	"context"
	"time"

	"github.com/venuebook/ticketer/internal/model"
)

// fakeStorage records every persistence call so tests can assert on
// what the engine mirrored to durable storage.
type fakeStorage struct {
	saved           []*model.Ticket
	deleted         []*model.Ticket
	cascadedScreens []int
	failSave        error
}

func (f *fakeStorage) SaveTicket(_ context.Context, t *model.Ticket) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.saved = append(f.saved, t)
	return nil
}

func (f *fakeStorage) DeleteTicket(_ context.Context, t *model.Ticket) error {
	f.deleted = append(f.deleted, t)
	return nil
}

func (f *fakeStorage) DeleteScreeningCascade(_ context.Context, id int) error {
	f.cascadedScreens = append(f.cascadedScreens, id)
	return nil
}

// day returns midnight UTC n days after a fixed epoch, the base for
// all window fixtures.
func day(n int) time.Time {
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testMovie(title, genre string) model.Movie {
	return model.Movie{Title: title, Genre: genre, RunningTime: 120, ReleaseYear: 2024}
}

func testVenue(number, rows, cols int) model.Venue {
	return model.Venue{Number: number, Rows: rows, Cols: cols}
}

func testScreening(id int, m model.Movie, v model.Venue, start, end time.Time, times ...model.ScreeningTime) *model.Screening {
	return &model.Screening{ID: id, Movie: m, Venue: v, Start: start, End: end, Times: times}
}
