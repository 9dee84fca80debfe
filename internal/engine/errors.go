// Package engine implements the booking-domain core: the owned
// in-memory data set, recurring slot expansion, startup consistency
// validation, the booking arrangement state machine, and screening
// pagination.  Nothing in this package performs I/O beyond the
// Storage collaborator it is handed; no error returned here is ever
// fatal to the process.
package engine

import (
	"errors"
	"fmt"
)

// ErrScreeningNotFound indicates a screening ID that is not in the
// active set.  Handlers should translate this into an HTTP 404.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrTicketNotFound indicates a ticket delete that matched nothing.
var ErrTicketNotFound = errors.New("ticket not found")

// ValidationError reports malformed caller input: a bad seat label,
// attendee count, username, or similar.  No engine state changes when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapacityError reports an attempt to book past what the venue or the
// chosen slot can hold: a sold-out slot, more attendees than seats
// remain, or selecting a seat beyond the attendee cap.  No engine
// state changes when one is returned.
type CapacityError struct {
	Reason    string
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return e.Reason
}

// PageError reports a pagination request beyond the last page.
type PageError struct {
	Page    int
	MaxPage int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d out of range (max %d)", e.Page, e.MaxPage)
}

// StateError reports a booking command issued out of step order, for
// example submitting an attendee count before a slot is chosen.
type StateError struct {
	Op    string
	State ArrangementState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}
