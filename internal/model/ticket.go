package model

import "time"

// Ticket is one booked seat at one concrete slot of a screening.
// Identity is the (screening, slot, seat) triple; the username only
// records who the booking belongs to and can differ between two
// otherwise identical tickets without making them distinct.
//
// Fields:
//
//	Screening – the screening this ticket is booked for (shared, read-only).
//	Slot      – the concrete date and time of the booked showing.  Must
//	            fall inside the screening's active window.
//	Seat      – allocated seat label, e.g. "B17".  Matches the venue's
//	            row/column bounds.
//	Username  – owner of the booking (3–16 chars, alphanumeric + underscore).
type Ticket struct {
	Screening *Screening // ticket.screening_id
	Slot      time.Time  // ticket.selected_date
	Seat      string     // ticket.allocated_seat
	Username  string     // ticket.username
}

// Equal reports whether two tickets denote the same booked seat.
// The username is deliberately excluded from identity.
func (t *Ticket) Equal(other *Ticket) bool {
	return t.Screening.ID == other.Screening.ID &&
		t.Slot.Equal(other.Slot) &&
		t.Seat == other.Seat
}
