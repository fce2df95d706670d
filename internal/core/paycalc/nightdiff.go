package paycalc

import (
	"time"

	"shifttrack.service/internal/core/model"
)

// parseClock parses an HH:MM time of day into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// NightHours returns how many hours of the shift fall inside the configured
// night window. The window may wrap past midnight (start > end), in which
// case each local calendar day the shift touches contributes an evening
// segment (window start to next midnight) and a morning segment (midnight to
// window end). Walking day by day attributes an overnight shift's
// pre-midnight and post-midnight portions without double-counting.
//
// Open entries and unparseable window bounds yield 0; window validation is
// the config layer's job.
func NightHours(e model.TimeEntry, cfg model.PayRateConfig) float64 {
	if e.IsOpen() {
		return 0
	}
	start, ok := parseClock(cfg.NightDiffStartTime)
	if !ok {
		return 0
	}
	end, ok := parseClock(cfg.NightDiffEndTime)
	if !ok {
		return 0
	}
	wraps := start > end

	shiftStart, shiftEnd := e.ClockIn, *e.ClockOut

	var night time.Duration
	for day := startOfDay(shiftStart); day.Before(shiftEnd); day = day.AddDate(0, 0, 1) {
		nextMidnight := day.AddDate(0, 0, 1)
		if wraps {
			night += overlap(shiftStart, shiftEnd, minutesOn(day, start), nextMidnight)
			night += overlap(shiftStart, shiftEnd, day, minutesOn(day, end))
		} else {
			night += overlap(shiftStart, shiftEnd, minutesOn(day, start), minutesOn(day, end))
		}
	}
	return night.Hours()
}
