package engine

import (
	"context"
	"regexp"
	"time"

	"github.com/venuebook/ticketer/internal/model"
	"github.com/venuebook/ticketer/internal/seat"
)

// ArrangementState is one step of the booking flow.
type ArrangementState int

const (
	// Undecided: no screening chosen yet.
	Undecided ArrangementState = iota
	// DecideWhen: screening chosen, waiting on a time slot.
	DecideWhen
	// DecideAttendees: slot chosen, waiting on an attendee count.
	DecideAttendees
	// Confirm: attendee count accepted; seats and username are being
	// gathered for the final commit.
	Confirm
)

func (s ArrangementState) String() string {
	switch s {
	case Undecided:
		return "undecided"
	case DecideWhen:
		return "decide-when"
	case DecideAttendees:
		return "decide-attendees"
	case Confirm:
		return "confirm"
	default:
		return "unknown"
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,16}$`)

// ValidUsername reports whether name is 3-16 word characters, the only
// form accepted on bookings and ticket queries.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// Arrangement is the in-progress, not-yet-committed booking state for
// the single user session.  It drives the flow
// Undecided -> DecideWhen -> DecideAttendees -> Confirm and enforces
// the cascading-reset invariant: whenever an earlier step is
// revisited, everything gathered for later steps is discarded.
//
// Arrangement is not safe for concurrent use; the transport layer
// serializes commands onto it.
type Arrangement struct {
	store   *Store
	storage Storage

	state     ArrangementState
	screening *model.Screening
	slots     []time.Time
	slot      time.Time
	attendees int
	seats     []string // insertion-ordered seat label set
	username  string
}

// NewArrangement creates an idle arrangement over the engine's store.
// storage receives the compiled tickets at commit time.
func NewArrangement(store *Store, storage Storage) *Arrangement {
	return &Arrangement{store: store, storage: storage}
}

// State returns the current step of the flow.
func (a *Arrangement) State() ArrangementState { return a.state }

// Screening returns the selected screening, or nil before one is
// chosen.
func (a *Arrangement) Screening() *model.Screening { return a.screening }

// Slots returns the bookable slots computed when the screening was
// selected.
func (a *Arrangement) Slots() []time.Time { return a.slots }

// Slot returns the chosen slot; the zero time before one is chosen.
func (a *Arrangement) Slot() time.Time { return a.slot }

// Attendees returns the accepted attendee count, or 0 before one is
// accepted.
func (a *Arrangement) Attendees() int { return a.attendees }

// Seats returns the currently selected seat labels in selection
// order.
func (a *Arrangement) Seats() []string {
	return append([]string(nil), a.seats...)
}

// Username returns the username the booking will be saved under.
func (a *Arrangement) Username() string { return a.username }

// SelectScreening starts (or restarts) the flow on a screening.  The
// bookable slots are computed against now, and all downstream state
// is cleared.
func (a *Arrangement) SelectScreening(id int, now time.Time) error {
	s, ok := a.store.ScreeningByID(id)
	if !ok {
		return ErrScreeningNotFound
	}
	a.screening = s
	a.transition(DecideWhen)
	a.slots = AvailableSlots(s, now)
	return nil
}

// SelectSlot picks one of the offered slots and advances to the
// attendee step.  Re-picking the slot later discards any previously
// accepted attendee count.
func (a *Arrangement) SelectSlot(slot time.Time) error {
	if a.state == Undecided {
		return &StateError{Op: "select a time", State: a.state}
	}
	valid := false
	for _, s := range a.slots {
		if s.Equal(slot) {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Field: "slot", Reason: "not one of the screening's available times"}
	}
	a.slot = slot
	a.transition(DecideAttendees)
	return nil
}

// SetAttendees submits the attendee count and advances to the
// confirmation step.  The count must be 1..venue capacity and must
// not exceed the seats remaining at the chosen slot; a sold-out slot
// or an oversized party is rejected with a CapacityError and the flow
// stays put.  Accepting a new count clears any seats already picked.
func (a *Arrangement) SetAttendees(n int) error {
	if a.state < DecideAttendees {
		return &StateError{Op: "set attendees", State: a.state}
	}
	remaining := a.store.RemainingSeats(a.screening, a.slot)
	if remaining == 0 {
		return &CapacityError{Reason: "no seats left at this time slot", Requested: n, Remaining: 0}
	}
	if n < 1 {
		return &ValidationError{Field: "attendees", Reason: "must be a number of at least 1"}
	}
	// remaining never exceeds the venue capacity, so this also bounds
	// n by the venue's total seats.
	if n > remaining {
		return &CapacityError{Reason: "not enough free seats left at this time slot", Requested: n, Remaining: remaining}
	}
	a.attendees = n
	a.seats = nil
	a.state = Confirm
	return nil
}

// ToggleSeat selects a seat, or deselects it if already selected.  It
// reports whether the seat is selected after the call.  The selection
// is capped at the accepted attendee count; seats already ticketed at
// the chosen slot cannot be selected.
func (a *Arrangement) ToggleSeat(label string) (selected bool, err error) {
	if a.state != Confirm {
		return false, &StateError{Op: "select seats", State: a.state}
	}
	row, col, err := seat.ParseLabel(label)
	if err != nil {
		return false, &ValidationError{Field: "seat", Reason: err.Error()}
	}
	venue := a.screening.Venue
	if row >= venue.Rows || col >= venue.Cols {
		return false, &ValidationError{Field: "seat", Reason: "outside the venue's seat grid"}
	}
	for i, existing := range a.seats {
		if existing == label {
			a.seats = append(a.seats[:i], a.seats[i+1:]...)
			return false, nil
		}
	}
	if len(a.seats) >= a.attendees {
		return false, &CapacityError{Reason: "all seats for this booking are already selected", Requested: len(a.seats) + 1, Remaining: 0}
	}
	if a.store.SeatTaken(a.screening.ID, a.slot, label) {
		return false, &CapacityError{Reason: "seat is already booked", Requested: 1, Remaining: 0}
	}
	a.seats = append(a.seats, label)
	return true, nil
}

// SetUsername records the username the tickets will be saved under.
func (a *Arrangement) SetUsername(name string) error {
	if a.state != Confirm {
		return &StateError{Op: "set a username", State: a.state}
	}
	if !usernamePattern.MatchString(name) {
		return &ValidationError{Field: "username", Reason: "must be 3-16 letters, numbers, or underscores"}
	}
	a.username = name
	return nil
}

// Confirm compiles the booking: one ticket per selected seat, all
// appended to the ticket set and persisted through the storage
// collaborator.  It requires exactly as many seats as attendees and a
// valid username.  On success the flow returns to Undecided and the
// compiled tickets are returned.
func (a *Arrangement) Confirm(ctx context.Context) ([]*model.Ticket, error) {
	if a.state != Confirm {
		return nil, &StateError{Op: "confirm", State: a.state}
	}
	if len(a.seats) != a.attendees {
		return nil, &ValidationError{Field: "seats", Reason: "seat selection is incomplete"}
	}
	if a.username == "" {
		return nil, &ValidationError{Field: "username", Reason: "a username is required to save the booking"}
	}

	tickets := make([]*model.Ticket, 0, len(a.seats))
	for _, label := range a.seats {
		tickets = append(tickets, &model.Ticket{
			Screening: a.screening,
			Slot:      a.slot,
			Seat:      label,
			Username:  a.username,
		})
	}
	if a.storage != nil {
		for _, t := range tickets {
			if err := a.storage.SaveTicket(ctx, t); err != nil {
				return nil, err
			}
		}
	}
	a.store.AddTickets(tickets...)
	a.transition(Undecided)
	return tickets, nil
}

// Cancel hard-resets the flow from any state back to Undecided,
// clearing all booking-in-progress state.
func (a *Arrangement) Cancel() {
	a.transition(Undecided)
}

// transition moves to a state and applies its cascading resets.
// State for a later step is never trusted once an earlier step is
// revisited.
func (a *Arrangement) transition(next ArrangementState) {
	a.state = next
	switch next {
	case Undecided:
		a.screening = nil
		fallthrough
	case DecideWhen:
		a.slots = nil
		a.slot = time.Time{}
		a.attendees = 0
		a.seats = nil
		a.username = ""
	case DecideAttendees:
		a.attendees = 0
	}
}
