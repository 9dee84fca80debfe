package engine

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/venuebook/ticketer/internal/model"
)

// LookaheadDays bounds how far into the future bookable slots are
// offered, regardless of how long the screening's window runs.
const LookaheadDays = 14

// AvailableSlots expands a screening's weekly recurrence rules into
// the ordered list of concrete, not-yet-passed booking timestamps
// between now and min(now + LookaheadDays, screening end).
//
// The result is recomputed fresh on every call; "now" advances, so a
// cached copy would offer stale slots.  Malformed "HH:MM" rules are
// logged and skipped without aborting the scan.  Slots are appended
// in day order, then in rule-declaration order within each day.
func AvailableSlots(s *model.Screening, now time.Time) []time.Time {
	horizon := now.AddDate(0, 0, LookaheadDays)
	if s.End.Before(horizon) {
		horizon = s.End
	}
	if !horizon.After(now) {
		return nil
	}

	var slots []time.Time
	for cursor := now; cursor.Before(horizon); cursor = cursor.AddDate(0, 0, 1) {
		day := cursor.Weekday().String()
		for _, rule := range s.Times {
			if rule.DayOfWeek != day {
				continue
			}
			hour, minute, err := parseClock(rule.Clock)
			if err != nil {
				log.Printf("slots: screening #%d: skipping rule %s %q: %v", s.ID, rule.DayOfWeek, rule.Clock, err)
				continue
			}
			slot := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), hour, minute, 0, 0, cursor.Location())
			// Drop slots that have already passed on the first
			// partial day, and slots past the horizon on the last.
			if !slot.After(now) || slot.After(horizon) {
				continue
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// parseClock splits a 24-hour "HH:MM" string into its components.
func parseClock(clock string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing ':' separator")
	}
	hour, err = strconv.Atoi(hh)
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(mm)
	if err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %02d:%02d out of range", hour, minute)
	}
	return hour, minute, nil
}
