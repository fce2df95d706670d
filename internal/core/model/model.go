package model

import (
	"time"
)

// SyncStatus defines the state of an entry's push to the cloud sync gateway.
type SyncStatus string

const (
	StatusSyncPending   SyncStatus = "PENDING"
	StatusSyncCompleted SyncStatus = "COMPLETED"
	StatusSyncFailed    SyncStatus = "FAILED"
)

// TimeEntry is one clock-in/clock-out record. A nil ClockOut means the
// shift is still open (in progress).
type TimeEntry struct {
	ID       string     `json:"id"`
	ClockIn  time.Time  `json:"clockIn"`
	ClockOut *time.Time `json:"clockOut"`
	Notes    string     `json:"notes,omitempty"`

	// Cloud-sync bookkeeping, not part of the entry's persisted identity.
	SyncStatus     SyncStatus `json:"-"`
	SyncRetryCount int        `json:"-"`
}

// IsOpen reports whether the entry is an in-progress shift.
func (e TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// PayRateConfig holds the rate table and tier thresholds used to turn
// worked hours into a pay breakdown. NightDiffStartTime/NightDiffEndTime
// are local times of day in HH:MM; the window may wrap past midnight.
type PayRateConfig struct {
	BaseHourlyRate                float64 `json:"baseHourlyRate"`
	OvertimeMultiplier            float64 `json:"overtimeMultiplier"`
	PenaltyOvertimeMultiplier     float64 `json:"penaltyOvertimeMultiplier"`
	NightDifferentialRate         float64 `json:"nightDifferentialRate"`
	SundayPremiumPercent          float64 `json:"sundayPremiumPercent"`
	DailyOvertimeThresholdHours   float64 `json:"dailyOvertimeThresholdHours"`
	DailyPenaltyOTThresholdHours  float64 `json:"dailyPenaltyOTThresholdHours"`
	WeeklyOvertimeThresholdHours  float64 `json:"weeklyOvertimeThresholdHours"`
	WeeklyPenaltyOTThresholdHours float64 `json:"weeklyPenaltyOTThresholdHours"`
	NightDiffStartTime            string  `json:"nightDiffStartTime"`
	NightDiffEndTime              string  `json:"nightDiffEndTime"`
}

// PaySummary is the pay breakdown for one accounting period.
type PaySummary struct {
	TotalHours       float64 `json:"totalHours"`
	BaseHours        float64 `json:"baseHours"`
	OTHours          float64 `json:"otHours"`
	PenaltyOTHours   float64 `json:"penaltyOTHours"`
	NightDiffHours   float64 `json:"nightDiffHours"`
	SundayHours      float64 `json:"sundayHours"`
	BasePay          float64 `json:"basePay"`
	OTPay            float64 `json:"otPay"`
	PenaltyOTPay     float64 `json:"penaltyOTPay"`
	NightDiffPay     float64 `json:"nightDiffPay"`
	SundayPremiumPay float64 `json:"sundayPremiumPay"`
	EstimatedPay     float64 `json:"estimatedPay"`
}
