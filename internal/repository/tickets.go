package repository

import (
	"context"
	"log"
	"time"

	"github.com/venuebook/ticketer/internal/model"
)

// LoadTickets reads the booked tickets whose slot has not yet passed
// and resolves each against the loaded screening set.  Expired rows
// stay in the table but are not loaded; tickets referencing a
// screening that was not loaded are skipped with a warning (the
// startup validator deals with anything else).
func (s *Store) LoadTickets(ctx context.Context, screenings map[int]*model.Screening) ([]*model.Ticket, error) {
	const q = `SELECT screening_id, selected_date, allocated_seat, username
		FROM ticket WHERE selected_date > NOW()`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*model.Ticket
	for rows.Next() {
		var (
			screeningID int
			slot        time.Time
			t           model.Ticket
		)
		if err := rows.Scan(&screeningID, &slot, &t.Seat, &t.Username); err != nil {
			return nil, err
		}
		screening, ok := screenings[screeningID]
		if !ok {
			log.Printf("load: ticket %s references unloaded screening #%d; skipped", t.Seat, screeningID)
			continue
		}
		t.Screening = screening
		t.Slot = slot
		tickets = append(tickets, &t)
	}
	return tickets, rows.Err()
}

// SaveTicket inserts a freshly booked ticket.
func (s *Store) SaveTicket(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO ticket (screening_id, selected_date, allocated_seat, username)
		VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, t.Screening.ID, t.Slot.UTC(), t.Seat, t.Username)
	return err
}

// DeleteTicket removes one ticket by its identity triple.  The
// username is not part of ticket identity and does not participate in
// the match.
func (s *Store) DeleteTicket(ctx context.Context, t *model.Ticket) error {
	const q = `DELETE FROM ticket
		WHERE screening_id = ? AND selected_date = ? AND allocated_seat = ?`
	res, err := s.db.ExecContext(ctx, q, t.Screening.ID, t.Slot.UTC(), t.Seat)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
