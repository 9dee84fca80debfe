// Package handler exposes the HTTP handlers for the ticketing API. This
// file defines the read-only browsing endpoints: paginated screening
// lists, screening detail, slot expansion and seat availability. All of
// them are unauthenticated.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venuebook/ticketer/internal/engine"
	"github.com/venuebook/ticketer/internal/model"
)

// BrowseHandler serves the catalogue endpoints from the in-memory
// store. Reads take the shared engine mutex because bookings and
// cancellations mutate the same store.
type BrowseHandler struct {
	Mu    *sync.Mutex
	Store *engine.Store // loaded catalogue and tickets
}

// ScreeningSummary is one row of a screening list response.
type ScreeningSummary struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
	Venue  int    `json:"venue"`
	Status string `json:"status"`
}

// ScreeningDetail is the full single-screening response.
type ScreeningDetail struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	RunningTime int       `json:"running_time"`
	ReleaseYear int       `json:"release_year"`
	Venue       int       `json:"venue"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Times       []string  `json:"times"`
	Status      string    `json:"status"`
}

func summarize(s *model.Screening, now time.Time) ScreeningSummary {
	return ScreeningSummary{
		ID:     s.ID,
		Title:  s.Movie.Title,
		Genre:  s.Movie.Genre,
		Venue:  s.Venue.Number,
		Status: s.TimeStatus(now),
	}
}

// ListScreenings returns one page of screenings, optionally filtered by
// genre (?genre=Horror). Pages are 1-based (?page=1 is the default) and
// the page bounds are computed over the filtered set.
func (h *BrowseHandler) ListScreenings(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
		page = n
	}

	h.Mu.Lock()
	defer h.Mu.Unlock()

	var screenings []*model.Screening
	if genre := c.QueryParam("genre"); genre != "" {
		screenings = h.Store.ScreeningsByGenre(genre)
	} else {
		screenings = h.Store.Screenings()
	}

	items, err := engine.Paginate(screenings, page)
	if err != nil {
		var pe *engine.PageError
		if errors.As(err, &pe) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":    "page out of range",
				"max_page": pe.MaxPage,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	now := time.Now()
	out := make([]ScreeningSummary, 0, len(items))
	for _, s := range items {
		out = append(out, summarize(s, now))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    out,
		"page":     page,
		"max_page": engine.MaxPage(len(screenings)),
	})
}

// GetScreening returns the full record for one screening.
func (h *BrowseHandler) GetScreening(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.lookup(c)
	if !ok {
		return nil // response already written
	}
	times := make([]string, 0, len(s.Times))
	for _, t := range s.Times {
		times = append(times, t.DayOfWeek+" "+t.Clock)
	}
	return c.JSON(http.StatusOK, ScreeningDetail{
		ID:          s.ID,
		Title:       s.Movie.Title,
		Genre:       s.Movie.Genre,
		RunningTime: s.Movie.RunningTime,
		ReleaseYear: s.Movie.ReleaseYear,
		Venue:       s.Venue.Number,
		Rows:        s.Venue.Rows,
		Cols:        s.Venue.Cols,
		Start:       s.Start,
		End:         s.End,
		Times:       times,
		Status:      s.TimeStatus(time.Now()),
	})
}

// GetSlots returns the concrete bookable timestamps for a screening
// within the lookahead window, soonest first.
func (h *BrowseHandler) GetSlots(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.lookup(c)
	if !ok {
		return nil
	}
	slots := engine.AvailableSlots(s, time.Now())
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAvailability reports the seat map for one screening at one slot
// (?slot=RFC3339). Taken seats are listed by label alongside the
// remaining count.
func (h *BrowseHandler) GetAvailability(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	s, ok := h.lookup(c)
	if !ok {
		return nil
	}
	raw := c.QueryParam("slot")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing slot parameter"})
	}
	slot, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot timestamp"})
	}

	taken := make([]string, 0)
	for _, t := range h.Store.TicketsAt(s.ID, slot) {
		taken = append(taken, t.Seat)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"screening_id": s.ID,
		"slot":         slot.Format(time.RFC3339),
		"rows":         s.Venue.Rows,
		"cols":         s.Venue.Cols,
		"taken":        taken,
		"remaining":    h.Store.RemainingSeats(s, slot),
	})
}

// ListGenres returns the genre census: each genre with the number of
// screenings currently carrying it.
func (h *BrowseHandler) ListGenres(c echo.Context) error {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"items": h.Store.Genres()})
}

// lookup resolves the :id path parameter against the store. On failure
// it writes the error response and returns false.
func (h *BrowseHandler) lookup(c echo.Context) (*model.Screening, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	s, ok := h.Store.ScreeningByID(id)
	if !ok {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "screening not found"})
		return nil, false
	}
	return s, true
}
