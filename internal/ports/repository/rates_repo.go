package repository

import (
	"context"
	"database/sql"

	"shifttrack.service/internal/core/model"
)

// The rate table lives in a single-row pay_rates table; GetRates returns nil
// when it has never been saved so the service can fall back to defaults.

func (r *TimeEntryRepository) GetRates(ctx context.Context) (*model.PayRateConfig, error) {
	query := `SELECT base_hourly_rate, overtime_multiplier, penalty_ot_multiplier,
                     night_diff_rate, sunday_premium_percent,
                     daily_ot_threshold_hours, daily_penalty_ot_threshold_hours,
                     weekly_ot_threshold_hours, weekly_penalty_ot_threshold_hours,
                     night_diff_start, night_diff_end
              FROM pay_rates WHERE id = 1`

	var cfg model.PayRateConfig
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&cfg.BaseHourlyRate, &cfg.OvertimeMultiplier, &cfg.PenaltyOvertimeMultiplier,
		&cfg.NightDifferentialRate, &cfg.SundayPremiumPercent,
		&cfg.DailyOvertimeThresholdHours, &cfg.DailyPenaltyOTThresholdHours,
		&cfg.WeeklyOvertimeThresholdHours, &cfg.WeeklyPenaltyOTThresholdHours,
		&cfg.NightDiffStartTime, &cfg.NightDiffEndTime,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *TimeEntryRepository) SaveRates(ctx context.Context, cfg model.PayRateConfig) error {
	query := `INSERT INTO pay_rates (id, base_hourly_rate, overtime_multiplier, penalty_ot_multiplier,
                                     night_diff_rate, sunday_premium_percent,
                                     daily_ot_threshold_hours, daily_penalty_ot_threshold_hours,
                                     weekly_ot_threshold_hours, weekly_penalty_ot_threshold_hours,
                                     night_diff_start, night_diff_end)
              VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
              ON CONFLICT (id) DO UPDATE
              SET base_hourly_rate = EXCLUDED.base_hourly_rate,
                  overtime_multiplier = EXCLUDED.overtime_multiplier,
                  penalty_ot_multiplier = EXCLUDED.penalty_ot_multiplier,
                  night_diff_rate = EXCLUDED.night_diff_rate,
                  sunday_premium_percent = EXCLUDED.sunday_premium_percent,
                  daily_ot_threshold_hours = EXCLUDED.daily_ot_threshold_hours,
                  daily_penalty_ot_threshold_hours = EXCLUDED.daily_penalty_ot_threshold_hours,
                  weekly_ot_threshold_hours = EXCLUDED.weekly_ot_threshold_hours,
                  weekly_penalty_ot_threshold_hours = EXCLUDED.weekly_penalty_ot_threshold_hours,
                  night_diff_start = EXCLUDED.night_diff_start,
                  night_diff_end = EXCLUDED.night_diff_end`

	_, err := r.DB.ExecContext(ctx, query,
		cfg.BaseHourlyRate, cfg.OvertimeMultiplier, cfg.PenaltyOvertimeMultiplier,
		cfg.NightDifferentialRate, cfg.SundayPremiumPercent,
		cfg.DailyOvertimeThresholdHours, cfg.DailyPenaltyOTThresholdHours,
		cfg.WeeklyOvertimeThresholdHours, cfg.WeeklyPenaltyOTThresholdHours,
		cfg.NightDiffStartTime, cfg.NightDiffEndTime,
	)
	return err
}
