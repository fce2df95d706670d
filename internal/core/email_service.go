package core

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shifttrack.service/internal/core/model"
	"shifttrack.service/pkg/telemetry"
)

type EmailService interface {
	SendPaySummary(ctx context.Context, to string, from, until time.Time, summary model.PaySummary) error
}

type SESEmailService struct {
	client *ses.Client
	sender string
}

func NewSESEmailService(client *ses.Client, sender string) *SESEmailService {
	return &SESEmailService{client: client, sender: sender}
}

func (s *SESEmailService) SendPaySummary(ctx context.Context, to string, from, until time.Time, summary model.PaySummary) error {
	tracer := otel.Tracer("ses-email-service")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if entryID := telemetry.GetEntryIDFromContext(ctx); entryID != "" {
		span.SetAttributes(attribute.String("app.entry_id", entryID))
	}

	body := fmt.Sprintf(
		"Hello,\n\nPay summary for %s to %s:\n\n"+
			"Total hours:      %.2f\n"+
			"Base hours:       %.2f ($%.2f)\n"+
			"Overtime:         %.2f ($%.2f)\n"+
			"Penalty overtime: %.2f ($%.2f)\n"+
			"Night diff hours: %.2f ($%.2f)\n"+
			"Sunday hours:     %.2f ($%.2f)\n\n"+
			"Estimated pay:    $%.2f\n",
		from.Format("2006-01-02"), until.Format("2006-01-02"),
		summary.TotalHours,
		summary.BaseHours, summary.BasePay,
		summary.OTHours, summary.OTPay,
		summary.PenaltyOTHours, summary.PenaltyOTPay,
		summary.NightDiffHours, summary.NightDiffPay,
		summary.SundayHours, summary.SundayPremiumPay,
		summary.EstimatedPay,
	)

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Shift Pay Summary"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
