// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/venuebook/ticketer/internal/handler"
)

// RegisterHealth registers the health check endpoint. Load balancers
// and monitoring systems use it to verify that the service is up.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBrowse registers the read-only catalogue endpoints under /v1.
// These routes carry no session state and are safe to call in any order.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler) {
	// Paginated screening list, optionally filtered by ?genre=.
	e.GET("/v1/screenings", b.ListScreenings)
	// Full record for one screening.
	e.GET("/v1/screenings/:id", b.GetScreening)
	// Concrete bookable timestamps within the lookahead window.
	e.GET("/v1/screenings/:id/slots", b.GetSlots)
	// Seat map for one screening at one slot (?slot=RFC3339).
	e.GET("/v1/screenings/:id/availability", b.GetAvailability)
	// Genre census over the active screening set.
	e.GET("/v1/genres", b.ListGenres)
}

// RegisterBooking registers the booking session endpoints. Commands
// must arrive in flow order (screening, slot, attendees, seats,
// confirm); out-of-order commands are rejected with 409.
func RegisterBooking(e *echo.Echo, bk *handler.BookingHandler) {
	g := e.Group("/v1/booking")
	// Snapshot of the arrangement in progress.
	g.GET("", bk.GetState)
	// Start (or restart) a booking for a screening.
	g.POST("/screening", bk.SelectScreening)
	// Pick one of the offered timestamps.
	g.POST("/slot", bk.SelectSlot)
	// Set the group size.
	g.POST("/attendees", bk.SetAttendees)
	// Select or deselect a seat by label.
	g.POST("/seats", bk.ToggleSeat)
	// Record the booking username.
	g.POST("/username", bk.SetUsername)
	// Commit the booking and persist the tickets.
	g.POST("/confirm", bk.Confirm)
	// Abandon the booking in progress.
	g.DELETE("", bk.Cancel)
}

// RegisterTickets registers ticket queries and cancellations.
func RegisterTickets(e *echo.Echo, t *handler.TicketsHandler) {
	// Tickets held under ?username=.
	e.GET("/v1/tickets", t.ListByUsername)
	// Cancel one ticket by identity, or all tickets for a username.
	e.DELETE("/v1/tickets", t.Delete)
}
