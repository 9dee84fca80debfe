package model

import (
	"fmt"
	"time"
)

// ScreeningTime is one weekly recurrence rule owned by a screening:
// the screening runs every week on DayOfWeek at Clock during the
// screening's active window.
//
// Fields:
//
//	DayOfWeek – English weekday name, e.g. "Tuesday".
//	Clock     – time of day in 24-hour "HH:MM" form, e.g. "12:30".
type ScreeningTime struct {
	DayOfWeek string // screening_times.screening_day
	Clock     string // screening_times.screening_time
}

// Screening is a movie's scheduled run at a venue over a date range,
// recurring weekly per one or more ScreeningTime rules.  Start and
// End bound the active window (Start < End); concrete bookable slots
// are derived from the rules inside that window.
//
// Fields:
//
//	ID    – unique screening identifier.
//	Movie – the movie being shown (shared, read-only).
//	Venue – where the screening is held (shared, read-only).
//	Start – beginning of the active window.
//	End   – end of the active window.
//	Times – recurrence rules in declaration order.
type Screening struct {
	ID    int             // screening.screening_id
	Movie Movie           // screening.movie_name
	Venue Venue           // screening.venue_no
	Start time.Time       // screening.start_date
	End   time.Time       // screening.end_date
	Times []ScreeningTime // owned rules, ordered
}

// Equal reports whether two screenings are the same screening.
// Identity is the ID alone.
func (s *Screening) Equal(other *Screening) bool {
	return s.ID == other.ID
}

// TimeStatus sums up in casual terms how close the screening is to
// being over, relative to now.
func (s *Screening) TimeStatus(now time.Time) string {
	diff := s.End.Sub(now)
	days := int(diff.Hours() / 24)
	switch {
	case diff.Hours() <= 6:
		return "less than six hours"
	case days <= 1:
		return "less than a day"
	case days <= 7:
		return "less than a week"
	case days <= 14:
		return fmt.Sprintf("%d days", days)
	case days <= 21:
		return "more than a couple of weeks"
	case days <= 28:
		return "about a month"
	default:
		return "more than a month"
	}
}
