package paycalc

import (
	"time"

	"shifttrack.service/internal/core/model"
)

// March 2026: the 1st is a Sunday, the 2nd a Monday. All test times are in
// the ambient local zone, matching how day boundaries are computed.
func at(day, hour, min int) time.Time {
	return time.Date(2026, time.March, day, hour, min, 0, 0, time.Local)
}

func tp(t time.Time) *time.Time {
	return &t
}

func closed(id string, in, out time.Time) model.TimeEntry {
	return model.TimeEntry{ID: id, ClockIn: in, ClockOut: &out}
}

func open(id string, in time.Time) model.TimeEntry {
	return model.TimeEntry{ID: id, ClockIn: in}
}

func testRates() model.PayRateConfig {
	return model.PayRateConfig{
		BaseHourlyRate:                25,
		OvertimeMultiplier:            1.5,
		PenaltyOvertimeMultiplier:     2,
		NightDifferentialRate:         3.5,
		SundayPremiumPercent:          50,
		DailyOvertimeThresholdHours:   8,
		DailyPenaltyOTThresholdHours:  10,
		WeeklyOvertimeThresholdHours:  40,
		WeeklyPenaltyOTThresholdHours: 56,
		NightDiffStartTime:            "22:00",
		NightDiffEndTime:              "06:00",
	}
}
