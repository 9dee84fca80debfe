package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/ticketer/internal/engine"
	"github.com/venuebook/ticketer/internal/model"
)

// TicketsHandler serves ticket queries and cancellations. Mutations go
// through the store first and are mirrored to durable storage; a
// storage failure is logged by the repository but does not roll back
// the in-memory removal.
type TicketsHandler struct {
	Mu      *sync.Mutex
	Store   *engine.Store
	Storage engine.Storage
}

// TicketView is one ticket in a list response.
type TicketView struct {
	ScreeningID int    `json:"screening_id"`
	Title       string `json:"title"`
	Venue       int    `json:"venue"`
	Slot        string `json:"slot"`
	Seat        string `json:"seat"`
	Username    string `json:"username"`
}

func ticketView(t *model.Ticket) TicketView {
	return TicketView{
		ScreeningID: t.Screening.ID,
		Title:       t.Screening.Movie.Title,
		Venue:       t.Screening.Venue.Number,
		Slot:        t.Slot.Format(time.RFC3339),
		Seat:        t.Seat,
		Username:    t.Username,
	}
}

// ListByUsername returns the tickets held under ?username=. The name
// must match the booking username format.
func (h *TicketsHandler) ListByUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if !engine.ValidUsername(username) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()
	tickets := h.Store.TicketsByUsername(username)
	out := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketView(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Delete cancels tickets. With screening_id, slot and seat in the body
// it removes that single ticket; with only a username it removes every
// ticket held under that name.
func (h *TicketsHandler) Delete(c echo.Context) error {
	var req struct {
		ScreeningID int    `json:"screening_id"`
		Slot        string `json:"slot"`
		Seat        string `json:"seat"`
		Username    string `json:"username"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()

	if req.Seat != "" {
		slot, err := time.Parse(time.RFC3339, req.Slot)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot timestamp"})
		}
		s, ok := h.Store.ScreeningByID(req.ScreeningID)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		}
		t := &model.Ticket{Screening: s, Slot: slot, Seat: req.Seat}
		if !h.Store.RemoveTicket(t) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		if err := h.Storage.DeleteTicket(c.Request().Context(), t); err != nil {
			c.Logger().Warnf("tickets: delete from storage failed: %v", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"removed": 1})
	}

	if !engine.ValidUsername(req.Username) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username"})
	}
	removed := 0
	for _, t := range h.Store.TicketsByUsername(req.Username) {
		if h.Store.RemoveTicket(t) {
			removed++
			if err := h.Storage.DeleteTicket(c.Request().Context(), t); err != nil {
				c.Logger().Warnf("tickets: delete from storage failed: %v", err)
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}
