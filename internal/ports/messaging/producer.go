package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Producer struct {
	sender        MessageSender
	syncQueueURL  string
	emailQueueURL string
}

func NewProducer(sender MessageSender, syncQueueURL, emailQueueURL string) *Producer {
	return &Producer{
		sender:        sender,
		syncQueueURL:  syncQueueURL,
		emailQueueURL: emailQueueURL,
	}
}

// NewSQSProducer creates a Producer backed by an AWS SQS sender.
func NewSQSProducer(client SQSClient, syncQueueURL, emailQueueURL string) *Producer {
	return NewProducer(&SQSSender{client: client}, syncQueueURL, emailQueueURL)
}

func (p *Producer) PublishSync(ctx context.Context, body interface{}) error {
	return p.publish(ctx, p.syncQueueURL, body)
}

func (p *Producer) PublishEmail(ctx context.Context, body interface{}) error {
	return p.publish(ctx, p.emailQueueURL, body)
}

func (p *Producer) publish(ctx context.Context, destination string, body interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	// Enrich the current span with the entry id if available
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		var payload struct {
			EntryID string `json:"entryId"`
		}
		if err := json.Unmarshal(b, &payload); err == nil && payload.EntryID != "" {
			span.SetAttributes(attribute.String("app.entry_id", payload.EntryID))
		}
	}

	if err := p.sender.SendMessage(ctx, destination, b); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
