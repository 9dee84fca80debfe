package handler

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/ticketer/internal/engine"
	"github.com/venuebook/ticketer/internal/queue"
)

// BookingHandler drives the booking arrangement over HTTP. The
// arrangement is a single stateful session; Mu is shared with every
// handler touching the engine so concurrent commands are serialized
// rather than interleaved.
type BookingHandler struct {
	Mu          *sync.Mutex
	Arrangement *engine.Arrangement
	Events      bool // publish booking.confirmed events when true
}

// arrangementView is the JSON shape of the current booking state.
type arrangementView struct {
	State       string   `json:"state"`
	ScreeningID *int     `json:"screening_id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Slots       []string `json:"slots,omitempty"`
	Slot        string   `json:"slot,omitempty"`
	Attendees   int      `json:"attendees,omitempty"`
	Seats       []string `json:"seats,omitempty"`
	Username    string   `json:"username,omitempty"`
}

func (h *BookingHandler) view() arrangementView {
	a := h.Arrangement
	v := arrangementView{State: a.State().String()}
	if s := a.Screening(); s != nil {
		id := s.ID
		v.ScreeningID = &id
		v.Title = s.Movie.Title
	}
	for _, slot := range a.Slots() {
		v.Slots = append(v.Slots, slot.Format(time.RFC3339))
	}
	if !a.Slot().IsZero() {
		v.Slot = a.Slot().Format(time.RFC3339)
	}
	v.Attendees = a.Attendees()
	v.Seats = a.Seats()
	v.Username = a.Username()
	return v
}

// writeBookingError maps engine errors onto HTTP status codes: bad
// input is 400, missing screenings are 404, and state or capacity
// conflicts are 409.
func writeBookingError(c echo.Context, err error) error {
	var (
		ve *engine.ValidationError
		ce *engine.CapacityError
		se *engine.StateError
	)
	switch {
	case errors.Is(err, engine.ErrScreeningNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.As(err, &ce):
		return c.JSON(http.StatusConflict, echo.Map{"error": ce.Error()})
	case errors.As(err, &se):
		return c.JSON(http.StatusConflict, echo.Map{"error": se.Error(), "state": se.State.String()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// GetState returns the current arrangement snapshot.
func (h *BookingHandler) GetState(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return c.JSON(http.StatusOK, h.view())
}

// SelectScreening starts (or restarts) a booking for the screening
// named in the request body.
func (h *BookingHandler) SelectScreening(c echo.Context) error {
	var req struct {
		ScreeningID int `json:"screening_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	if err := h.Arrangement.SelectScreening(req.ScreeningID, time.Now()); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, h.view())
}

// SelectSlot picks one of the offered timestamps.
func (h *BookingHandler) SelectSlot(c echo.Context) error {
	var req struct {
		Slot string `json:"slot"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	slot, err := time.Parse(time.RFC3339, req.Slot)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot timestamp"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	if err := h.Arrangement.SelectSlot(slot); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, h.view())
}

// SetAttendees sets the group size for the booking.
func (h *BookingHandler) SetAttendees(c echo.Context) error {
	var req struct {
		Attendees int `json:"attendees"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	if err := h.Arrangement.SetAttendees(req.Attendees); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, h.view())
}

// ToggleSeat selects or deselects one seat by label ("B17").
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	var req struct {
		Seat string `json:"seat"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	selected, err := h.Arrangement.ToggleSeat(req.Seat)
	if err != nil {
		return writeBookingError(c, err)
	}
	v := h.view()
	return c.JSON(http.StatusOK, echo.Map{"selected": selected, "booking": v})
}

// SetUsername records who the booking is for.
func (h *BookingHandler) SetUsername(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	if err := h.Arrangement.SetUsername(req.Username); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, h.view())
}

// Confirm commits the booking, persisting one ticket per selected seat
// and resetting the arrangement. The username may be supplied in the
// confirm body instead of a prior /username call. On success it
// optionally publishes a booking.confirmed event; publish failures are
// logged, never surfaced.
func (h *BookingHandler) Confirm(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()

	if req.Username != "" {
		if err := h.Arrangement.SetUsername(req.Username); err != nil {
			return writeBookingError(c, err)
		}
	}

	// Capture details for the event before Confirm resets the state.
	s := h.Arrangement.Screening()
	slot := h.Arrangement.Slot()
	username := h.Arrangement.Username()

	tickets, err := h.Arrangement.Confirm(c.Request().Context())
	if err != nil {
		return writeBookingError(c, err)
	}

	seats := make([]string, 0, len(tickets))
	for _, t := range tickets {
		seats = append(seats, t.Seat)
	}

	if h.Events && s != nil {
		ev := queue.BookingConfirmedEvent{
			ScreeningID: s.ID,
			MovieTitle:  s.Movie.Title,
			Genre:       s.Movie.Genre,
			Venue:       s.Venue.Number,
			Slot:        slot.Format(time.RFC3339),
			Seats:       seats,
			Username:    username,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := queue.PublishBookingConfirmed(c.Request().Context(), ev); err != nil {
			log.Printf("booking: publish confirmed event failed: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"screening_id": s.ID,
		"slot":         slot.Format(time.RFC3339),
		"seats":        seats,
		"username":     username,
	})
}

// Cancel abandons the booking in progress and resets the arrangement.
func (h *BookingHandler) Cancel(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	h.Arrangement.Cancel()
	return c.JSON(http.StatusOK, h.view())
}
