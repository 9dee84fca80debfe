// Package queue defines the event payloads published to the message
// broker and the background consumer that records confirmed bookings.
package queue

// BookingConfirmedEvent is published once per confirmed booking. It
// carries enough detail for downstream consumers to log or notify
// without touching the primary database.
type BookingConfirmedEvent struct {
	ScreeningID int      `json:"screening_id"`
	MovieTitle  string   `json:"movie_title"`
	Genre       string   `json:"genre"`
	Venue       int      `json:"venue"`
	Slot        string   `json:"slot"`
	Seats       []string `json:"seats"`
	Username    string   `json:"username"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// ScreeningPurgedEvent is published when the consistency check removes
// a screening, so operators can audit what was dropped and why.
type ScreeningPurgedEvent struct {
	ScreeningID    int    `json:"screening_id"`
	MovieTitle     string `json:"movie_title"`
	Reason         string `json:"reason"`
	TicketsRemoved int    `json:"tickets_removed"`
	PurgedAt       string `json:"purged_at"`
}
