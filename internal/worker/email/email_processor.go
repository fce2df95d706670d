package email

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"shifttrack.service/internal/core"
	"shifttrack.service/internal/core/model"
	"shifttrack.service/internal/core/paycalc"
	"shifttrack.service/internal/ports/messaging"
	"shifttrack.service/internal/ports/repository"
)

type EmailProcessor struct {
	emailService core.EmailService
	repo         repository.Repository
	defaultRates model.PayRateConfig
}

// NewProcessor sets up a new processor for handling summary email jobs. It
// needs an email service to send mail and a repository to load the period's
// entries and rates.
func NewProcessor(emailService core.EmailService, repo repository.Repository, defaults model.PayRateConfig) *EmailProcessor {
	return &EmailProcessor{
		emailService: emailService,
		repo:         repo,
		defaultRates: defaults,
	}
}

// Process is the main entry point for handling a message from the email
// queue. It computes the period's pay breakdown and mails it, telling the
// worker to retry if something goes wrong.
func (p *EmailProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.SummaryEmailEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal summary email event")
		return false, 0, err // Do not retry on malformed message
	}

	entries, err := p.repo.ListEntries(ctx, event.From, event.To)
	if err != nil {
		return true, 10, fmt.Errorf("failed to load entries for summary email: %w", err)
	}

	rates, err := p.repo.GetRates(ctx)
	if err != nil {
		return true, 10, fmt.Errorf("failed to load rates for summary email: %w", err)
	}
	if rates == nil {
		r := p.defaultRates
		rates = &r
	}

	summary := paycalc.Summarize(entries, *rates)

	if err := p.emailService.SendPaySummary(ctx, event.Email, event.From, event.To, summary); err != nil {
		// No per-record retry count here; back off one step and let SQS redeliver.
		return true, calculateBackoff(1), err
	}

	log.Ctx(ctx).Info().Str("email", event.Email).Float64("estimated_pay", summary.EstimatedPay).Msg("Summary email sent")
	return false, 0, nil
}

// calculateBackoff determines how long to wait before retrying a failed job.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 { // Cap at 1 hour
		return 3600
	}
	return backoff
}
