package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"shifttrack.service/internal/core/model"
)

// Everything is driven by environment variables so the service can run
// unchanged in docker-compose, LocalStack local dev, and EKS.

type Config struct {
	DBHost           string `mapstructure:"DB_HOST"`
	DBPort           string `mapstructure:"DB_PORT"`
	DBUser           string `mapstructure:"DB_USER"`
	DBPassword       string `mapstructure:"DB_PASSWORD"`
	DBName           string `mapstructure:"DB_NAME"`
	ServerPort       string `mapstructure:"SERVER_PORT"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	SyncSQSQueueURL  string `mapstructure:"SYNC_SQS_QUEUE_URL"`
	EmailSQSQueueURL string `mapstructure:"EMAIL_SQS_QUEUE_URL"`
	AWSEndpoint      string `mapstructure:"AWS_ENDPOINT"`
	SyncGatewayURL   string `mapstructure:"SYNC_GATEWAY_URL"`
	SummaryEmailFrom string `mapstructure:"SUMMARY_EMAIL_FROM"`
	IsLocalDev       bool   `mapstructure:"IS_LOCAL_DEV"`

	// Defaults for the rate table, used until rates are saved explicitly.
	BaseHourlyRate                float64 `mapstructure:"BASE_HOURLY_RATE"`
	OvertimeMultiplier            float64 `mapstructure:"OVERTIME_MULTIPLIER"`
	PenaltyOvertimeMultiplier     float64 `mapstructure:"PENALTY_OT_MULTIPLIER"`
	NightDifferentialRate         float64 `mapstructure:"NIGHT_DIFF_RATE"`
	SundayPremiumPercent          float64 `mapstructure:"SUNDAY_PREMIUM_PERCENT"`
	DailyOvertimeThresholdHours   float64 `mapstructure:"DAILY_OT_THRESHOLD_HOURS"`
	DailyPenaltyOTThresholdHours  float64 `mapstructure:"DAILY_PENALTY_OT_THRESHOLD_HOURS"`
	WeeklyOvertimeThresholdHours  float64 `mapstructure:"WEEKLY_OT_THRESHOLD_HOURS"`
	WeeklyPenaltyOTThresholdHours float64 `mapstructure:"WEEKLY_PENALTY_OT_THRESHOLD_HOURS"`
	NightDiffStartTime            string  `mapstructure:"NIGHT_DIFF_START"`
	NightDiffEndTime              string  `mapstructure:"NIGHT_DIFF_END"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("DB_HOST", "db")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "shifttrack_db")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("SYNC_SQS_QUEUE_URL", "http://localstack:4566/000000000000/sync-queue")
	viper.SetDefault("EMAIL_SQS_QUEUE_URL", "http://localstack:4566/000000000000/email-queue")
	viper.SetDefault("AWS_ENDPOINT", "http://localstack:4566")
	viper.SetDefault("SYNC_GATEWAY_URL", "http://localhost:8081/")
	viper.SetDefault("SUMMARY_EMAIL_FROM", "summary@shifttrack-service.com")
	viper.SetDefault("IS_LOCAL_DEV", false)

	viper.SetDefault("BASE_HOURLY_RATE", 25.0)
	viper.SetDefault("OVERTIME_MULTIPLIER", 1.5)
	viper.SetDefault("PENALTY_OT_MULTIPLIER", 2.0)
	viper.SetDefault("NIGHT_DIFF_RATE", 3.5)
	viper.SetDefault("SUNDAY_PREMIUM_PERCENT", 50.0)
	viper.SetDefault("DAILY_OT_THRESHOLD_HOURS", 8.0)
	viper.SetDefault("DAILY_PENALTY_OT_THRESHOLD_HOURS", 10.0)
	viper.SetDefault("WEEKLY_OT_THRESHOLD_HOURS", 40.0)
	viper.SetDefault("WEEKLY_PENALTY_OT_THRESHOLD_HOURS", 56.0)
	viper.SetDefault("NIGHT_DIFF_START", "22:00")
	viper.SetDefault("NIGHT_DIFF_END", "06:00")

	// Read in environment variables that match the keys.
	viper.AutomaticEnv()

	if err = viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if _, perr := time.Parse("15:04", config.NightDiffStartTime); perr != nil {
		return config, fmt.Errorf("NIGHT_DIFF_START must be HH:MM: %w", perr)
	}
	if _, perr := time.Parse("15:04", config.NightDiffEndTime); perr != nil {
		return config, fmt.Errorf("NIGHT_DIFF_END must be HH:MM: %w", perr)
	}

	return config, nil
}

// DefaultRates assembles the rate table used before one is saved.
func (c Config) DefaultRates() model.PayRateConfig {
	return model.PayRateConfig{
		BaseHourlyRate:                c.BaseHourlyRate,
		OvertimeMultiplier:            c.OvertimeMultiplier,
		PenaltyOvertimeMultiplier:     c.PenaltyOvertimeMultiplier,
		NightDifferentialRate:         c.NightDifferentialRate,
		SundayPremiumPercent:          c.SundayPremiumPercent,
		DailyOvertimeThresholdHours:   c.DailyOvertimeThresholdHours,
		DailyPenaltyOTThresholdHours:  c.DailyPenaltyOTThresholdHours,
		WeeklyOvertimeThresholdHours:  c.WeeklyOvertimeThresholdHours,
		WeeklyPenaltyOTThresholdHours: c.WeeklyPenaltyOTThresholdHours,
		NightDiffStartTime:            c.NightDiffStartTime,
		NightDiffEndTime:              c.NightDiffEndTime,
	}
}
