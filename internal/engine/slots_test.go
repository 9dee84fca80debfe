package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/ticketer/internal/model"
)

// day(0) is Monday 2026-03-02 UTC; the weekday fixtures below rely on
// that.

func TestAvailableSlotsExpandsWeeklyRules(t *testing.T) {
	s := testScreening(1, testMovie("Night Shift", "Horror"), testVenue(1, 2, 3),
		day(-1), day(30),
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "09:00"},
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "18:00"},
		model.ScreeningTime{DayOfWeek: "Wednesday", Clock: "20:15"},
	)
	now := day(0).Add(10 * time.Hour) // Monday 10:00

	slots := AvailableSlots(s, now)

	// Monday 09:00 has already passed today; the scan covers 14 days
	// so the Monday two weeks out is not reached.
	want := []time.Time{
		day(0).Add(18 * time.Hour),                // Monday 18:00
		day(2).Add(20*time.Hour + 15*time.Minute), // Wednesday 20:15
		day(7).Add(9 * time.Hour),                 // next Monday 09:00
		day(7).Add(18 * time.Hour),                // next Monday 18:00
		day(9).Add(20*time.Hour + 15*time.Minute), // next Wednesday 20:15
	}
	require.Len(t, slots, len(want))
	for i, w := range want {
		assert.True(t, slots[i].Equal(w), "slot %d: got %v want %v", i, slots[i], w)
	}
}

func TestAvailableSlotsNeverOutsideHorizon(t *testing.T) {
	s := testScreening(1, testMovie("Night Shift", "Horror"), testVenue(1, 2, 3),
		day(-10), day(60),
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "00:30"},
		model.ScreeningTime{DayOfWeek: "Sunday", Clock: "23:45"},
	)
	now := day(0).Add(10 * time.Hour)
	horizon := now.AddDate(0, 0, LookaheadDays)

	for _, slot := range AvailableSlots(s, now) {
		assert.True(t, slot.After(now), "slot %v not after now", slot)
		assert.False(t, slot.After(horizon), "slot %v past the 14-day horizon", slot)
	}
}

func TestAvailableSlotsCappedByScreeningEnd(t *testing.T) {
	// Window ends Thursday noon; the Thursday 13:00 showing falls
	// inside the day walk but past the end of the window.
	s := testScreening(1, testMovie("Night Shift", "Horror"), testVenue(1, 2, 3),
		day(-1), day(3).Add(12*time.Hour),
		model.ScreeningTime{DayOfWeek: "Wednesday", Clock: "20:15"},
		model.ScreeningTime{DayOfWeek: "Thursday", Clock: "13:00"},
	)
	now := day(0).Add(10 * time.Hour)

	slots := AvailableSlots(s, now)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(day(2).Add(20*time.Hour+15*time.Minute)))
}

func TestAvailableSlotsEmptyWhenWindowOver(t *testing.T) {
	s := testScreening(1, testMovie("Night Shift", "Horror"), testVenue(1, 2, 3),
		day(-20), day(-1),
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "18:00"},
	)
	assert.Empty(t, AvailableSlots(s, day(0).Add(10*time.Hour)))
}

func TestAvailableSlotsSkipsMalformedClocks(t *testing.T) {
	s := testScreening(1, testMovie("Night Shift", "Horror"), testVenue(1, 2, 3),
		day(-1), day(30),
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "xx:30"},
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "25:00"},
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "1830"},
		model.ScreeningTime{DayOfWeek: "Monday", Clock: "18:00"},
	)
	now := day(0).Add(10 * time.Hour)

	slots := AvailableSlots(s, now)
	require.Len(t, slots, 2) // this Monday and next, 18:00 only
	assert.True(t, slots[0].Equal(day(0).Add(18*time.Hour)))
	assert.True(t, slots[1].Equal(day(7).Add(18*time.Hour)))
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"", "18", "24:00", "12:60", "-1:00", "aa:bb"} {
		_, _, err := parseClock(bad)
		assert.Error(t, err, "clock %q should not parse", bad)
	}
}
