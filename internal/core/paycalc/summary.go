package paycalc

import (
	"math"

	"shifttrack.service/internal/core/model"
)

// Summarize turns a set of entries and a rate table into a tiered pay
// breakdown. The caller pre-filters entries to the accounting period it
// cares about; the weekly thresholds apply to whatever set is passed.
// Open entries are excluded entirely.
//
// Hours are tiered per local calendar day of the clock-in first (base up to
// the daily OT threshold, OT up to the daily penalty threshold, penalty OT
// above that), then the weekly thresholds spill excess base hours into OT
// and excess base+OT hours into penalty OT, in that order. Night and Sunday
// hours accumulate per entry, independent of the tiers.
func Summarize(entries []model.TimeEntry, cfg model.PayRateConfig) model.PaySummary {
	var s model.PaySummary

	byDay := make(map[string][]model.TimeEntry)
	for _, e := range entries {
		if e.IsOpen() {
			continue
		}
		key := e.ClockIn.Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}

	for _, day := range byDay {
		var dayTotal float64
		for _, e := range day {
			dayTotal += Hours(e)
			s.NightDiffHours += NightHours(e, cfg)
			s.SundayHours += SundayHours(e)
		}
		s.BaseHours += math.Min(dayTotal, cfg.DailyOvertimeThresholdHours)
		s.OTHours += math.Max(0, math.Min(dayTotal, cfg.DailyPenaltyOTThresholdHours)-cfg.DailyOvertimeThresholdHours)
		s.PenaltyOTHours += math.Max(0, dayTotal-cfg.DailyPenaltyOTThresholdHours)
	}

	// Weekly spillover: base past the weekly OT threshold becomes OT, then
	// base+OT past the weekly penalty threshold becomes penalty OT. The
	// order matters.
	if s.BaseHours > cfg.WeeklyOvertimeThresholdHours {
		excess := s.BaseHours - cfg.WeeklyOvertimeThresholdHours
		s.BaseHours -= excess
		s.OTHours += excess
	}
	if s.BaseHours+s.OTHours > cfg.WeeklyPenaltyOTThresholdHours {
		excess := s.BaseHours + s.OTHours - cfg.WeeklyPenaltyOTThresholdHours
		s.OTHours -= excess
		s.PenaltyOTHours += excess
	}

	s.TotalHours = s.BaseHours + s.OTHours + s.PenaltyOTHours

	s.BasePay = s.BaseHours * cfg.BaseHourlyRate
	s.OTPay = s.OTHours * cfg.BaseHourlyRate * cfg.OvertimeMultiplier
	s.PenaltyOTPay = s.PenaltyOTHours * cfg.BaseHourlyRate * cfg.PenaltyOvertimeMultiplier
	// Night differential is a flat per-hour amount, not rate-relative.
	s.NightDiffPay = s.NightDiffHours * cfg.NightDifferentialRate
	s.SundayPremiumPay = s.SundayHours * cfg.BaseHourlyRate * cfg.SundayPremiumPercent / 100
	s.EstimatedPay = s.BasePay + s.OTPay + s.PenaltyOTPay + s.NightDiffPay + s.SundayPremiumPay

	return s
}
