package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/ticketer/internal/model"
)

func twoScreeningStore(t *testing.T) (*Store, *model.Screening, *model.Screening) {
	t.Helper()
	horror := testMovie("Night Shift", "Horror")
	comedy := testMovie("Punchline", "Comedy")
	venue := testVenue(1, 2, 3)
	s1 := testScreening(1, horror, venue, day(0), day(30))
	s2 := testScreening(2, comedy, venue, day(0), day(30))
	st := NewStore(
		[]model.Movie{horror, comedy},
		[]model.Venue{venue},
		[]*model.Screening{s1, s2},
		nil,
	)
	return st, s1, s2
}

func TestStoreLookups(t *testing.T) {
	st, s1, _ := twoScreeningStore(t)

	m, ok := st.MovieByTitle("Night Shift")
	require.True(t, ok)
	assert.Equal(t, "Horror", m.Genre)

	v, ok := st.VenueByNumber(1)
	require.True(t, ok)
	assert.Equal(t, 6, v.TotalSeats())

	got, ok := st.ScreeningByID(1)
	require.True(t, ok)
	assert.True(t, got.Equal(s1))

	_, ok = st.ScreeningByID(99)
	assert.False(t, ok)
}

func TestScreeningsAreIDOrdered(t *testing.T) {
	st, _, _ := twoScreeningStore(t)
	ordered := st.Screenings()
	require.Len(t, ordered, 2)
	assert.Equal(t, 1, ordered[0].ID)
	assert.Equal(t, 2, ordered[1].ID)
}

func TestGenreCensus(t *testing.T) {
	st, s1, _ := twoScreeningStore(t)
	assert.Equal(t, map[string]int{"Horror": 1, "Comedy": 1}, st.Genres())

	st.RemoveScreening(s1.ID)
	assert.Equal(t, map[string]int{"Comedy": 1}, st.Genres())
}

// remainingSeats(s, t) = capacity - |tickets matching (s, t)|, and the
// count reflects every mutation immediately.
func TestRemainingSeats(t *testing.T) {
	st, s1, s2 := twoScreeningStore(t)
	slot := day(3).Add(18 * time.Hour)
	otherSlot := day(4).Add(18 * time.Hour)

	assert.Equal(t, 6, st.RemainingSeats(s1, slot))

	st.AddTickets(
		&model.Ticket{Screening: s1, Slot: slot, Seat: "A1", Username: "alice_77"},
		&model.Ticket{Screening: s1, Slot: slot, Seat: "A2", Username: "alice_77"},
		&model.Ticket{Screening: s1, Slot: otherSlot, Seat: "A1", Username: "bob_3"},
		&model.Ticket{Screening: s2, Slot: slot, Seat: "A1", Username: "bob_3"},
	)

	// Only exact (screening, slot) matches count.
	assert.Equal(t, 4, st.RemainingSeats(s1, slot))
	assert.Equal(t, 5, st.RemainingSeats(s1, otherSlot))
	assert.Equal(t, 5, st.RemainingSeats(s2, slot))

	removed := st.RemoveTicket(&model.Ticket{Screening: s1, Slot: slot, Seat: "A2"})
	assert.True(t, removed)
	assert.Equal(t, 5, st.RemainingSeats(s1, slot))
}

func TestTicketQueries(t *testing.T) {
	st, s1, s2 := twoScreeningStore(t)
	slot := day(3).Add(18 * time.Hour)
	st.AddTickets(
		&model.Ticket{Screening: s1, Slot: slot, Seat: "A1", Username: "alice_77"},
		&model.Ticket{Screening: s1, Slot: slot, Seat: "B2", Username: "bob_3"},
		&model.Ticket{Screening: s2, Slot: slot, Seat: "A1", Username: "alice_77"},
	)

	assert.Len(t, st.TicketsByScreening(s1.ID), 2)
	assert.Len(t, st.TicketsAt(s1.ID, slot), 2)
	assert.Len(t, st.TicketsByUsername("alice_77"), 2)
	assert.Empty(t, st.TicketsByUsername("nobody"))
	assert.True(t, st.SeatTaken(s1.ID, slot, "B2"))
	assert.False(t, st.SeatTaken(s1.ID, slot, "C1"))
}

func TestRemoveScreeningCascadesTickets(t *testing.T) {
	st, s1, s2 := twoScreeningStore(t)
	slot := day(3).Add(18 * time.Hour)
	st.AddTickets(
		&model.Ticket{Screening: s1, Slot: slot, Seat: "A1", Username: "alice_77"},
		&model.Ticket{Screening: s1, Slot: slot, Seat: "A2", Username: "alice_77"},
		&model.Ticket{Screening: s2, Slot: slot, Seat: "A1", Username: "bob_3"},
	)

	removed := st.RemoveScreening(s1.ID)
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, st.ScreeningCount())
	assert.Equal(t, 1, st.TicketCount())
	assert.Empty(t, st.TicketsByScreening(s1.ID))

	assert.Nil(t, st.RemoveScreening(99))
}
