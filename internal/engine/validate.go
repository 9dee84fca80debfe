package engine

import (
	"context"
	"log"

	"github.com/venuebook/ticketer/internal/model"
)

// Validator performs the one-off startup consistency pass over the
// freshly loaded data set.  It exists to catch corruption introduced
// outside the application (hand-edited rows, broken imports); it
// never runs on user-initiated mutations, which are derived from
// validated availability.
type Validator struct {
	// StrictOverlap switches the overlap test to a true symmetric
	// interval check.  The default reproduces the legacy predicate,
	// which also flags same-movie pairs that merely coexist; stored
	// data may already have been shaped by that rule, so correcting
	// it is opt-in.
	StrictOverlap bool

	// Purge mirrors removals to durable storage through Storage.
	// Off by default: the usual mode only drops offending records
	// from the working set for this process lifetime.
	Purge bool

	// Storage receives the mirrored deletes when Purge is set.
	Storage Storage
}

// Report summarizes what a validation run removed.
type Report struct {
	PurgedScreenings  []int // screening IDs removed by the overlap pass, in removal order
	CascadedTickets   int   // tickets removed because their screening was purged
	OutOfRangeTickets int   // tickets removed by the range pass
}

// Clean reports whether the run found nothing to remove.
func (r Report) Clean() bool {
	return len(r.PurgedScreenings) == 0 && r.OutOfRangeTickets == 0
}

// Run executes the overlap pass and then the range pass against the
// store.  Violations are removed from the working set and summarized
// in the returned Report; they are never fatal.  Iteration is in
// ascending screening-ID order so the outcome is deterministic.
func (v *Validator) Run(ctx context.Context, st *Store) Report {
	var report Report

	// Overlap pass: flag same-movie screenings whose active windows
	// collide.  Only the second of a pair is flagged, and pairs with
	// an already-flagged member are skipped, so exactly one of each
	// colliding pair survives.
	ordered := st.Screenings()
	flagged := make(map[int]bool)
	var flagOrder []int
	for _, first := range ordered {
		for _, second := range ordered {
			if first.ID == second.ID || flagged[first.ID] || flagged[second.ID] {
				continue
			}
			if !first.Movie.Equal(second.Movie) {
				continue
			}
			if v.overlaps(first, second) {
				flagged[second.ID] = true
				flagOrder = append(flagOrder, second.ID)
			}
		}
	}
	for _, id := range flagOrder {
		removed := st.RemoveScreening(id)
		report.PurgedScreenings = append(report.PurgedScreenings, id)
		report.CascadedTickets += len(removed)
		log.Printf("validate: screening #%d overlaps another screening of the same movie; removed with %d ticket(s)", id, len(removed))
		if v.Purge && v.Storage != nil {
			if err := v.Storage.DeleteScreeningCascade(ctx, id); err != nil {
				log.Printf("validate: purge of screening #%d failed: %v", id, err)
			}
		}
	}

	// Range pass: a ticket's chosen slot must fall inside its
	// screening's active window.
	var invalid []*model.Ticket
	for _, s := range st.Screenings() {
		for _, t := range st.TicketsByScreening(s.ID) {
			if t.Slot.Before(s.Start) || t.Slot.After(s.End) {
				invalid = append(invalid, t)
			}
		}
	}
	for _, t := range invalid {
		st.RemoveTicket(t)
		report.OutOfRangeTickets++
		log.Printf("validate: ticket %s@%s for screening #%d falls outside the screening's window; removed", t.Seat, t.Slot.Format("2006-01-02 15:04"), t.Screening.ID)
		if v.Purge && v.Storage != nil {
			if err := v.Storage.DeleteTicket(ctx, t); err != nil {
				log.Printf("validate: purge of ticket %s failed: %v", t.Seat, err)
			}
		}
	}
	return report
}

// overlaps applies the configured window-collision predicate to an
// ordered pair of same-movie screenings.
func (v *Validator) overlaps(first, second *model.Screening) bool {
	if v.StrictOverlap {
		return first.Start.Before(second.End) && second.Start.Before(first.End)
	}
	// Legacy predicate, preserved verbatim: either arm alone flags
	// the pair, which is broader than true interval overlap.
	return first.End.After(second.Start) || first.Start.Before(second.End)
}
