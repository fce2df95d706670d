// Package paycalc contains the pure shift arithmetic: per-entry hour
// calculators, the entry validators, the tiered pay summary, and the
// last-writer-wins merge. Every function is a side-effect-free computation
// over its inputs; persistence and transport live elsewhere.
package paycalc

import (
	"time"

	"shifttrack.service/internal/core/model"
)

// Hours returns the length of a completed shift in decimal hours.
// An open entry contributes nothing until it is clocked out.
func Hours(e model.TimeEntry) float64 {
	if e.IsOpen() {
		return 0
	}
	return e.ClockOut.Sub(e.ClockIn).Hours()
}

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minutesOn returns the instant at the given minutes-of-day on day's
// local calendar date.
func minutesOn(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, day.Location())
}

// overlap returns how much of [aStart, aEnd) falls inside [bStart, bEnd),
// never negative.
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start, end := aStart, aEnd
	if bStart.After(start) {
		start = bStart
	}
	if bEnd.Before(end) {
		end = bEnd
	}
	if d := end.Sub(start); d > 0 {
		return d
	}
	return 0
}
