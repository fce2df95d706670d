package sync

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"shifttrack.service/internal/core/model"
	"shifttrack.service/internal/ports/messaging"
	"shifttrack.service/internal/ports/repository"
	"shifttrack.service/internal/worker/syncgateway"
)

// SyncProcessor handles jobs from the sync queue, pushing local entry
// changes to the cloud gateway. A circuit breaker keeps us from hammering
// the gateway when it is having issues.
type SyncProcessor struct {
	Repo    repository.Repository
	gateway syncgateway.GatewayClient
	cb      *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the sync queue.
func NewProcessor(r repository.Repository, gateway syncgateway.GatewayClient) *SyncProcessor {
	settings := gobreaker.Settings{
		Name:        "Sync-Gateway",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is bigger then 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &SyncProcessor{
		Repo:    r,
		gateway: gateway,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// Process handles one message from the sync queue: it loads the entry's
// current state and pushes it (or its tombstone) through the circuit
// breaker, driving retries off the entry's stored retry count.
func (p *SyncProcessor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.EntrySyncEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal sync event")
		return false, 0, err // Do not retry on malformed message
	}

	if event.Deleted {
		return p.pushTombstone(ctx, event.EntryID)
	}

	record, err := p.Repo.GetEntry(ctx, event.EntryID)
	if err != nil {
		return true, 10, err
	}
	if record == nil {
		// Deleted since the event was queued; the tombstone event covers it.
		log.Ctx(ctx).Info().Str("entry_id", event.EntryID).Msg("Entry gone, skipping sync")
		return false, 0, nil
	}
	if record.SyncStatus == model.StatusSyncCompleted {
		return false, 0, nil
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.gateway.PushChange(ctx, syncgateway.Change{EntryID: record.ID, Entry: record})
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping sync gateway call")
		}
		newCount := record.SyncRetryCount + 1
		p.Repo.UpdateSyncStatus(ctx, record.ID, model.StatusSyncPending, newCount)

		delay := calculateBackoff(newCount)
		return true, delay, err
	}

	err = p.Repo.UpdateSyncStatus(ctx, record.ID, model.StatusSyncCompleted, 0)
	return false, 0, err
}

// pushTombstone propagates a deletion. There is no local record left to hold
// a retry count, so the backoff is flat.
func (p *SyncProcessor) pushTombstone(ctx context.Context, entryID string) (bool, int32, error) {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.gateway.PushChange(ctx, syncgateway.Change{EntryID: entryID, Deleted: true})
	})
	if err != nil {
		return true, 30, err
	}
	return false, 0, nil
}

// calculateBackoff determines how long to wait before retrying a failed job.
// It increases the delay exponentially with each retry.
func calculateBackoff(retryCount int) int32 {
	backoff := int32(math.Pow(2, float64(retryCount)) * 10)
	if backoff > 3600 {
		return 3600 // max at 1 hour
	}
	return backoff
}
