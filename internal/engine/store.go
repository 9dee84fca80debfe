package engine

import (
	"context"
	"sort"
	"time"

	"github.com/venuebook/ticketer/internal/model"
)

// Storage is the persistence collaborator the engine writes through.
// The engine owns the in-memory data set; Storage only mirrors
// incremental changes (new bookings, deletions) back to durable
// storage.  Bulk loading happens outside the engine, before the
// Store is built.
type Storage interface {
	SaveTicket(ctx context.Context, t *model.Ticket) error
	DeleteTicket(ctx context.Context, t *model.Ticket) error
	DeleteScreeningCascade(ctx context.Context, screeningID int) error
}

// Store is the single owned aggregate of the four domain collections:
// movies by title, venues by number, active screenings by ID, and the
// ticket list.  It also tracks the genre census of the active
// screening set.  All mutation goes through Store methods; callers
// only ever see copies or read-only values.
//
// Store is not safe for concurrent use.  The engine models a single
// logical actor; serialization is the transport layer's concern.
type Store struct {
	movies     map[string]model.Movie
	venues     map[int]model.Venue
	screenings map[int]*model.Screening
	tickets    []*model.Ticket
	genres     map[string]int // genre -> number of active screenings
}

// NewStore builds the aggregate from bulk-loaded data.  The genre
// census is derived from the screening set, one count per screening.
func NewStore(movies []model.Movie, venues []model.Venue, screenings []*model.Screening, tickets []*model.Ticket) *Store {
	st := &Store{
		movies:     make(map[string]model.Movie, len(movies)),
		venues:     make(map[int]model.Venue, len(venues)),
		screenings: make(map[int]*model.Screening, len(screenings)),
		tickets:    append([]*model.Ticket(nil), tickets...),
		genres:     make(map[string]int),
	}
	for _, m := range movies {
		st.movies[m.Title] = m
	}
	for _, v := range venues {
		st.venues[v.Number] = v
	}
	for _, s := range screenings {
		st.screenings[s.ID] = s
		st.genres[s.Movie.Genre]++
	}
	return st
}

// MovieByTitle retrieves a movie by its unique title.
func (st *Store) MovieByTitle(title string) (model.Movie, bool) {
	m, ok := st.movies[title]
	return m, ok
}

// VenueByNumber retrieves a venue by its unique number.
func (st *Store) VenueByNumber(number int) (model.Venue, bool) {
	v, ok := st.venues[number]
	return v, ok
}

// ScreeningByID retrieves a screening from the active set.
func (st *Store) ScreeningByID(id int) (*model.Screening, bool) {
	s, ok := st.screenings[id]
	return s, ok
}

// Screenings returns the active screening set in ascending ID order.
// Every listing and every validation pass iterates in this order so
// outcomes do not depend on map iteration.
func (st *Store) Screenings() []*model.Screening {
	out := make([]*model.Screening, 0, len(st.screenings))
	for _, s := range st.screenings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ScreeningCount returns the size of the active screening set.
func (st *Store) ScreeningCount() int {
	return len(st.screenings)
}

// ScreeningsByGenre returns the active screenings whose movie matches
// the genre, in ascending ID order.
func (st *Store) ScreeningsByGenre(genre string) []*model.Screening {
	var out []*model.Screening
	for _, s := range st.Screenings() {
		if s.Movie.Genre == genre {
			out = append(out, s)
		}
	}
	return out
}

// Genres returns a copy of the genre census: every genre present in
// the active screening set and how many screenings carry it.
func (st *Store) Genres() map[string]int {
	out := make(map[string]int, len(st.genres))
	for g, n := range st.genres {
		out[g] = n
	}
	return out
}

// TicketsByScreening returns all tickets booked for the screening.
func (st *Store) TicketsByScreening(screeningID int) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range st.tickets {
		if t.Screening.ID == screeningID {
			out = append(out, t)
		}
	}
	return out
}

// TicketsAt returns the tickets booked for one exact slot of a
// screening.
func (st *Store) TicketsAt(screeningID int, slot time.Time) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range st.tickets {
		if t.Screening.ID == screeningID && t.Slot.Equal(slot) {
			out = append(out, t)
		}
	}
	return out
}

// TicketsByUsername returns all tickets booked under the username.
func (st *Store) TicketsByUsername(username string) []*model.Ticket {
	var out []*model.Ticket
	for _, t := range st.tickets {
		if t.Username == username {
			out = append(out, t)
		}
	}
	return out
}

// SeatTaken reports whether a seat is already booked for the exact
// slot of a screening.
func (st *Store) SeatTaken(screeningID int, slot time.Time, seatLabel string) bool {
	for _, t := range st.tickets {
		if t.Screening.ID == screeningID && t.Slot.Equal(slot) && t.Seat == seatLabel {
			return true
		}
	}
	return false
}

// RemainingSeats computes how many seats are still free for the exact
// slot of a screening: venue capacity minus the tickets already
// booked for that screening at that timestamp.  The count is
// recomputed on every call; caching would risk overselling once
// tickets mutate between queries.
func (st *Store) RemainingSeats(s *model.Screening, slot time.Time) int {
	remaining := s.Venue.TotalSeats()
	for _, t := range st.tickets {
		if t.Screening.ID == s.ID && t.Slot.Equal(slot) {
			remaining--
		}
	}
	return remaining
}

// AddTickets appends freshly compiled tickets to the ticket set.
func (st *Store) AddTickets(tickets ...*model.Ticket) {
	st.tickets = append(st.tickets, tickets...)
}

// RemoveTicket deletes the ticket matching the given identity triple
// from the ticket set.  It reports whether anything was removed.
func (st *Store) RemoveTicket(t *model.Ticket) bool {
	for i, existing := range st.tickets {
		if existing.Equal(t) {
			st.tickets = append(st.tickets[:i], st.tickets[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveScreening deletes a screening from the active set together
// with every ticket referencing it, and decrements the genre census.
// It returns the removed tickets so callers can mirror the cascade
// to durable storage or report on it.
func (st *Store) RemoveScreening(id int) []*model.Ticket {
	s, ok := st.screenings[id]
	if !ok {
		return nil
	}
	delete(st.screenings, id)
	if st.genres[s.Movie.Genre]--; st.genres[s.Movie.Genre] <= 0 {
		delete(st.genres, s.Movie.Genre)
	}

	var removed []*model.Ticket
	kept := st.tickets[:0]
	for _, t := range st.tickets {
		if t.Screening.ID == id {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	st.tickets = kept
	return removed
}

// TicketCount returns the size of the ticket set.
func (st *Store) TicketCount() int {
	return len(st.tickets)
}
