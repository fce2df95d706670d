package core

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"shifttrack.service/internal/core/model"
	"shifttrack.service/internal/core/paycalc"
	"shifttrack.service/internal/ports/messaging"
	"shifttrack.service/internal/ports/repository"
)

// Validation failures are surfaced as distinct sentinel errors so the API
// layer can report check-specific messages.
var (
	ErrInvalidEntry       = errors.New("entry is structurally invalid")
	ErrOverlappingEntry   = errors.New("entry overlaps an existing shift")
	ErrOpenEntryNotLatest = errors.New("an open shift must be the most recent entry")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrInvalidRates       = errors.New("night window bounds must be HH:MM")
)

type ShiftService struct {
	repo         repository.Repository
	producer     messaging.QueueProducer
	defaultRates model.PayRateConfig
}

// NewShiftService creates the main application service, wiring up the
// database repository, the message queue producer, and the fallback rate
// table from configuration.
func NewShiftService(repo repository.Repository, p messaging.QueueProducer, defaults model.PayRateConfig) *ShiftService {
	return &ShiftService{
		repo:         repo,
		producer:     p,
		defaultRates: defaults,
	}
}

// Clock toggles the single-user shift state: with no open entry it starts
// one, otherwise it closes the open one. The returned entry is the record
// after the toggle.
func (s *ShiftService) Clock(ctx context.Context, notes string) (model.TimeEntry, error) {
	currentTime := time.Now()

	openEntry, err := s.repo.FindOpenEntry(ctx)
	if err != nil {
		return model.TimeEntry{}, errors.New("failed to query open shift")
	}

	if openEntry == nil {
		return s.clockIn(ctx, currentTime, notes)
	}

	return s.clockOut(ctx, *openEntry, currentTime)
}

// clockIn handles the clock-in workflow.
func (s *ShiftService) clockIn(ctx context.Context, clockIn time.Time, notes string) (model.TimeEntry, error) {
	entry := model.TimeEntry{
		ID:         uuid.NewString(),
		ClockIn:    clockIn,
		Notes:      notes,
		SyncStatus: model.StatusSyncPending,
	}

	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return model.TimeEntry{}, errors.New("failed to create clock-in record")
	}

	s.publishSync(ctx, entry.ID, false)
	return entry, nil
}

// clockOut handles the clock-out workflow.
func (s *ShiftService) clockOut(ctx context.Context, entry model.TimeEntry, clockOut time.Time) (model.TimeEntry, error) {
	entry.ClockOut = &clockOut
	entry.SyncStatus = model.StatusSyncPending

	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return model.TimeEntry{}, errors.New("failed to update clock-out record")
	}

	s.publishSync(ctx, entry.ID, false)
	return entry, nil
}

// Entries returns the entries whose clock-in falls in [from, to).
func (s *ShiftService) Entries(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	return s.repo.ListEntries(ctx, from, to)
}

// SaveEntry accepts a manual add or a wholesale edit of an entry. The edit
// is rejected unless all three invariant checks pass against the full
// collection; the stored version of the entry itself is excluded by id.
func (s *ShiftService) SaveEntry(ctx context.Context, entry model.TimeEntry) error {
	if !paycalc.IsStructurallyValid(entry) {
		return ErrInvalidEntry
	}

	all, err := s.repo.ListAllEntries(ctx)
	if err != nil {
		return errors.New("failed to load entries for validation")
	}
	if !paycalc.HasNoOverlap(entry, all) {
		return ErrOverlappingEntry
	}
	if !paycalc.IsSingleOpenConsistent(entry, all) {
		return ErrOpenEntryNotLatest
	}

	entry.SyncStatus = model.StatusSyncPending
	if err := s.repo.UpsertEntry(ctx, entry); err != nil {
		return errors.New("failed to save entry")
	}

	s.publishSync(ctx, entry.ID, false)
	return nil
}

// DeleteEntry removes an entry by id.
func (s *ShiftService) DeleteEntry(ctx context.Context, id string) error {
	err := s.repo.DeleteEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEntryNotFound
	}
	if err != nil {
		return errors.New("failed to delete entry")
	}

	s.publishSync(ctx, id, true)
	return nil
}

// ImportEntries merges an incoming collection into the store, incoming
// winning on id collision, and returns the size of the merged collection.
// Merge performs no validation; the import is a reconciliation, not an edit.
func (s *ShiftService) ImportEntries(ctx context.Context, incoming []model.TimeEntry) (int, error) {
	existing, err := s.repo.ListAllEntries(ctx)
	if err != nil {
		return 0, errors.New("failed to load entries for merge")
	}

	merged := paycalc.Merge(existing, incoming)
	if err := s.repo.ReplaceEntries(ctx, merged); err != nil {
		return 0, errors.New("failed to store merged entries")
	}

	for _, e := range incoming {
		s.publishSync(ctx, e.ID, false)
	}
	return len(merged), nil
}

// Summary computes the pay breakdown for entries clocked in inside
// [from, to). The period is the accounting window the weekly thresholds
// apply to, so callers pick it to match their pay week.
func (s *ShiftService) Summary(ctx context.Context, from, to time.Time) (model.PaySummary, error) {
	entries, err := s.repo.ListEntries(ctx, from, to)
	if err != nil {
		return model.PaySummary{}, errors.New("failed to load entries for summary")
	}

	rates, err := s.Rates(ctx)
	if err != nil {
		return model.PaySummary{}, err
	}

	return paycalc.Summarize(entries, rates), nil
}

// Rates returns the stored rate table, falling back to configured defaults
// when none has been saved yet.
func (s *ShiftService) Rates(ctx context.Context) (model.PayRateConfig, error) {
	stored, err := s.repo.GetRates(ctx)
	if err != nil {
		return model.PayRateConfig{}, errors.New("failed to load rate configuration")
	}
	if stored == nil {
		return s.defaultRates, nil
	}
	return *stored, nil
}

// UpdateRates replaces the rate table.
func (s *ShiftService) UpdateRates(ctx context.Context, cfg model.PayRateConfig) error {
	if _, err := time.Parse("15:04", cfg.NightDiffStartTime); err != nil {
		return ErrInvalidRates
	}
	if _, err := time.Parse("15:04", cfg.NightDiffEndTime); err != nil {
		return ErrInvalidRates
	}

	if err := s.repo.SaveRates(ctx, cfg); err != nil {
		return errors.New("failed to save rate configuration")
	}
	return nil
}

// RequestSummaryEmail queues a pay-summary mail for asynchronous delivery.
func (s *ShiftService) RequestSummaryEmail(ctx context.Context, email string, from, to time.Time) error {
	event := messaging.SummaryEmailEvent{
		Email:      email,
		From:       from,
		To:         to,
		OccurredAt: time.Now(),
	}
	if err := s.producer.PublishEmail(ctx, event); err != nil {
		return errors.New("failed to publish summary email event")
	}
	return nil
}

// publishSync queues a cloud push for the changed entry. Publishing is best
// effort; the sync worker re-drives failures off the entry's sync status.
func (s *ShiftService) publishSync(ctx context.Context, entryID string, deleted bool) {
	event := messaging.EntrySyncEvent{
		EntryID:    entryID,
		Deleted:    deleted,
		OccurredAt: time.Now(),
	}
	_ = s.producer.PublishSync(ctx, event)
}
