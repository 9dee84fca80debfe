package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/ticketer/internal/model"
)

// bookingFixture builds a store with one 2x3-seat screening showing
// Mondays at 18:00, an arrangement over it, and the fixed "now" the
// flow is driven at.
func bookingFixture(t *testing.T) (*Arrangement, *Store, *fakeStorage, time.Time) {
	t.Helper()
	movie := testMovie("Night Shift", "Horror")
	venue := testVenue(1, 2, 3) // 6 seats
	s := testScreening(1, movie, venue, day(-1), day(30),
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "18:00"},
	)
	st := NewStore([]model.Movie{movie}, []model.Venue{venue}, []*model.Screening{s}, nil)
	storage := &fakeStorage{}
	return NewArrangement(st, storage), st, storage, day(0).Add(10 * time.Hour)
}

func advanceToConfirm(t *testing.T, a *Arrangement, now time.Time, attendees int) {
	t.Helper()
	require.NoError(t, a.SelectScreening(1, now))
	require.NotEmpty(t, a.Slots())
	require.NoError(t, a.SelectSlot(a.Slots()[0]))
	require.NoError(t, a.SetAttendees(attendees))
}

func TestBookingFlowCommits(t *testing.T) {
	a, st, storage, now := bookingFixture(t)

	advanceToConfirm(t, a, now, 2)
	assert.Equal(t, Confirm, a.State())

	_, err := a.ToggleSeat("A1")
	require.NoError(t, err)
	_, err = a.ToggleSeat("B3")
	require.NoError(t, err)
	require.NoError(t, a.SetUsername("alice_77"))

	slot := a.Slot()
	tickets, err := a.Confirm(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "A1", tickets[0].Seat)
	assert.Equal(t, "B3", tickets[1].Seat)
	assert.Equal(t, "alice_77", tickets[0].Username)

	// Tickets are in the store, persisted, and the flow is idle again.
	assert.Equal(t, 4, st.RemainingSeats(tickets[0].Screening, slot))
	assert.Len(t, storage.saved, 2)
	assert.Equal(t, Undecided, a.State())
	assert.Nil(t, a.Screening())
}

// From Undecided, selecting a screening then immediately cancelling
// returns every derived field to its initial empty value.
func TestCancelResetsEverything(t *testing.T) {
	a, _, _, now := bookingFixture(t)

	advanceToConfirm(t, a, now, 2)
	_, err := a.ToggleSeat("A1")
	require.NoError(t, err)
	require.NoError(t, a.SetUsername("alice_77"))

	a.Cancel()

	assert.Equal(t, Undecided, a.State())
	assert.Nil(t, a.Screening())
	assert.Empty(t, a.Slots())
	assert.True(t, a.Slot().IsZero())
	assert.Zero(t, a.Attendees())
	assert.Empty(t, a.Seats())
	assert.Empty(t, a.Username())
}

// Revisiting the screening step discards everything gathered after it.
func TestReselectingScreeningCascadesReset(t *testing.T) {
	a, _, _, now := bookingFixture(t)

	advanceToConfirm(t, a, now, 2)
	_, err := a.ToggleSeat("A1")
	require.NoError(t, err)

	require.NoError(t, a.SelectScreening(1, now))

	assert.Equal(t, DecideWhen, a.State())
	assert.NotNil(t, a.Screening())
	assert.True(t, a.Slot().IsZero())
	assert.Zero(t, a.Attendees())
	assert.Empty(t, a.Seats())
}

func TestAttendeeValidation(t *testing.T) {
	a, _, _, now := bookingFixture(t)
	require.NoError(t, a.SelectScreening(1, now))
	require.NoError(t, a.SelectSlot(a.Slots()[0]))

	// The venue holds 6: the full house is accepted, one more is not.
	var capErr *CapacityError
	require.ErrorAs(t, a.SetAttendees(7), &capErr)
	assert.Equal(t, DecideAttendees, a.State(), "rejected count does not advance the flow")

	var valErr *ValidationError
	require.ErrorAs(t, a.SetAttendees(0), &valErr)

	require.NoError(t, a.SetAttendees(6))
	assert.Equal(t, Confirm, a.State())
}

func TestAttendeesRejectedWhenSoldOut(t *testing.T) {
	a, st, _, now := bookingFixture(t)
	require.NoError(t, a.SelectScreening(1, now))
	require.NoError(t, a.SelectSlot(a.Slots()[0]))
	slot := a.Slot()

	s, _ := st.ScreeningByID(1)
	for col := 1; col <= 3; col++ {
		for _, row := range []string{"A", "B"} {
			st.AddTickets(&model.Ticket{Screening: s, Slot: slot, Seat: row + string(rune('0'+col)), Username: "bob_3"})
		}
	}
	require.Zero(t, st.RemainingSeats(s, slot))

	var capErr *CapacityError
	require.ErrorAs(t, a.SetAttendees(1), &capErr)
	assert.Zero(t, capErr.Remaining)
}

func TestAttendeesCappedByRemaining(t *testing.T) {
	a, st, _, now := bookingFixture(t)
	require.NoError(t, a.SelectScreening(1, now))
	require.NoError(t, a.SelectSlot(a.Slots()[0]))

	s, _ := st.ScreeningByID(1)
	st.AddTickets(
		&model.Ticket{Screening: s, Slot: a.Slot(), Seat: "A1", Username: "bob_3"},
		&model.Ticket{Screening: s, Slot: a.Slot(), Seat: "A2", Username: "bob_3"},
	)

	var capErr *CapacityError
	require.ErrorAs(t, a.SetAttendees(5), &capErr)
	assert.Equal(t, 4, capErr.Remaining)

	require.NoError(t, a.SetAttendees(4))
}

func TestSeatSelection(t *testing.T) {
	a, st, _, now := bookingFixture(t)
	advanceToConfirm(t, a, now, 2)

	selected, err := a.ToggleSeat("A1")
	require.NoError(t, err)
	assert.True(t, selected)

	// Toggling again deselects.
	selected, err = a.ToggleSeat("A1")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Empty(t, a.Seats())

	// Selection is capped at the attendee count.
	_, err = a.ToggleSeat("A1")
	require.NoError(t, err)
	_, err = a.ToggleSeat("A2")
	require.NoError(t, err)
	var capErr *CapacityError
	_, err = a.ToggleSeat("A3")
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, []string{"A1", "A2"}, a.Seats())

	// Malformed and out-of-grid labels are rejected.
	var valErr *ValidationError
	_, err = a.ToggleSeat("11")
	require.ErrorAs(t, err, &valErr)
	_, err = a.ToggleSeat("C1") // venue has rows A-B only
	require.ErrorAs(t, err, &valErr)

	// Seats already ticketed at this slot cannot be selected.
	s, _ := st.ScreeningByID(1)
	st.AddTickets(&model.Ticket{Screening: s, Slot: a.Slot(), Seat: "B1", Username: "bob_3"})
	_, err = a.ToggleSeat("A1") // free the cap first
	require.NoError(t, err)
	_, err = a.ToggleSeat("B1")
	require.ErrorAs(t, err, &capErr)
}

func TestUsernameValidation(t *testing.T) {
	a, _, _, now := bookingFixture(t)
	advanceToConfirm(t, a, now, 1)

	var valErr *ValidationError
	for _, bad := range []string{"", "ab", "this_name_is_far_too_long", "bad name", "naïve"} {
		require.ErrorAs(t, a.SetUsername(bad), &valErr, "username %q", bad)
	}
	require.NoError(t, a.SetUsername("alice_77"))
}

func TestConfirmRequiresFullSelection(t *testing.T) {
	a, _, _, now := bookingFixture(t)
	advanceToConfirm(t, a, now, 2)

	_, err := a.ToggleSeat("A1")
	require.NoError(t, err)
	require.NoError(t, a.SetUsername("alice_77"))

	var valErr *ValidationError
	_, err = a.Confirm(context.Background())
	require.ErrorAs(t, err, &valErr, "one seat short of the attendee count")
	assert.Equal(t, Confirm, a.State())
}

func TestCommandsRejectedOutOfOrder(t *testing.T) {
	a, _, _, now := bookingFixture(t)

	var stateErr *StateError
	require.ErrorAs(t, a.SelectSlot(now), &stateErr)
	require.ErrorAs(t, a.SetAttendees(2), &stateErr)
	_, err := a.ToggleSeat("A1")
	require.ErrorAs(t, err, &stateErr)
	require.ErrorAs(t, a.SetUsername("alice_77"), &stateErr)
	_, err = a.Confirm(context.Background())
	require.ErrorAs(t, err, &stateErr)

	assert.ErrorIs(t, a.SelectScreening(99, now), ErrScreeningNotFound)
}

func TestSlotMustBeOffered(t *testing.T) {
	a, _, _, now := bookingFixture(t)
	require.NoError(t, a.SelectScreening(1, now))

	var valErr *ValidationError
	require.ErrorAs(t, a.SelectSlot(now.Add(time.Hour)), &valErr)
}
