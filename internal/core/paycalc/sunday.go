package paycalc

import (
	"time"

	"shifttrack.service/internal/core/model"
)

// SundayHours returns how many hours of the shift fall on a Sunday, in the
// local calendar. Same day walk as NightHours, with the candidate segment
// being the whole day. Open entries yield 0.
func SundayHours(e model.TimeEntry) float64 {
	if e.IsOpen() {
		return 0
	}

	var total time.Duration
	for day := startOfDay(e.ClockIn); day.Before(*e.ClockOut); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Sunday {
			continue
		}
		total += overlap(e.ClockIn, *e.ClockOut, day, day.AddDate(0, 0, 1))
	}
	return total.Hours()
}
