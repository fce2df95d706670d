package core

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shifttrack.service/internal/core/model"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	entries map[string]model.TimeEntry
	rates   *model.PayRateConfig
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: make(map[string]model.TimeEntry)}
}

func (f *fakeRepo) all() []model.TimeEntry {
	out := make([]model.TimeEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out
}

func (f *fakeRepo) ListEntries(_ context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	var out []model.TimeEntry
	for _, e := range f.all() {
		if !e.ClockIn.Before(from) && e.ClockIn.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllEntries(context.Context) ([]model.TimeEntry, error) {
	return f.all(), nil
}

func (f *fakeRepo) GetEntry(_ context.Context, id string) (*model.TimeEntry, error) {
	if e, ok := f.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindOpenEntry(context.Context) (*model.TimeEntry, error) {
	for _, e := range f.entries {
		if e.IsOpen() {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpsertEntry(_ context.Context, e model.TimeEntry) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeRepo) DeleteEntry(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeRepo) ReplaceEntries(_ context.Context, entries []model.TimeEntry) error {
	f.entries = make(map[string]model.TimeEntry, len(entries))
	for _, e := range entries {
		f.entries[e.ID] = e
	}
	return nil
}

func (f *fakeRepo) UpdateSyncStatus(_ context.Context, id string, status model.SyncStatus, retryCount int) error {
	e, ok := f.entries[id]
	if !ok {
		return sql.ErrNoRows
	}
	e.SyncStatus = status
	e.SyncRetryCount = retryCount
	f.entries[id] = e
	return nil
}

func (f *fakeRepo) GetRates(context.Context) (*model.PayRateConfig, error) {
	return f.rates, nil
}

func (f *fakeRepo) SaveRates(_ context.Context, cfg model.PayRateConfig) error {
	f.rates = &cfg
	return nil
}

// fakeProducer records published events.
type fakeProducer struct {
	sync  []interface{}
	email []interface{}
}

func (f *fakeProducer) PublishSync(_ context.Context, body interface{}) error {
	f.sync = append(f.sync, body)
	return nil
}

func (f *fakeProducer) PublishEmail(_ context.Context, body interface{}) error {
	f.email = append(f.email, body)
	return nil
}

func defaultRates() model.PayRateConfig {
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

func newTestService() (*ShiftService, *fakeRepo, *fakeProducer) {
	repo := newFakeRepo()
	producer := &fakeProducer{}
	return NewShiftService(repo, producer, defaultRates()), repo, producer
}

func mkClosed(id string, in, out time.Time) model.TimeEntry {
	return model.TimeEntry{ID: id, ClockIn: in, ClockOut: &out}
}

func day(d, h int) time.Time {
	return time.Date(2026, time.March, d, h, 0, 0, 0, time.Local)
}

func TestClockTogglesOpenShift(t *testing.T) {
	svc, repo, producer := newTestService()
	ctx := context.Background()

	started, err := svc.Clock(ctx, "morning shift")
	require.NoError(t, err)
	assert.True(t, started.IsOpen())
	assert.NotEmpty(t, started.ID)

	closed, err := svc.Clock(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, started.ID, closed.ID)
	require.NotNil(t, closed.ClockOut)
	assert.True(t, closed.ClockOut.After(closed.ClockIn) || closed.ClockOut.Equal(closed.ClockIn))

	assert.Len(t, repo.entries, 1)
	assert.Len(t, producer.sync, 2)
}

func TestSaveEntryRejectsStructuralInvalidity(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.SaveEntry(context.Background(), model.TimeEntry{ID: "", ClockIn: day(2, 9)})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestSaveEntryRejectsOverlap(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("a", day(2, 9), day(2, 17))))

	err := svc.SaveEntry(ctx, mkClosed("b", day(2, 16), day(2, 18)))
	assert.ErrorIs(t, err, ErrOverlappingEntry)

	// Touching boundaries are adjacent, not overlapping.
	assert.NoError(t, svc.SaveEntry(ctx, mkClosed("c", day(2, 17), day(2, 18))))
}

func TestSaveEntryRejectsStaleOpenShift(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("a", day(3, 9), day(3, 17))))

	// Reopening an entry behind a later shift fails the single-open check.
	err := svc.SaveEntry(ctx, model.TimeEntry{ID: "old", ClockIn: day(2, 9)})
	assert.ErrorIs(t, err, ErrOpenEntryNotLatest)
}

func TestSaveEntryAcceptsWholesaleEdit(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("a", day(2, 9), day(2, 17))))

	edited := mkClosed("a", day(2, 10), day(2, 18))
	edited.Notes = "corrected"
	require.NoError(t, svc.SaveEntry(ctx, edited))

	stored, err := repo.GetEntry(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "corrected", stored.Notes)
	assert.True(t, stored.ClockIn.Equal(day(2, 10)))
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.DeleteEntry(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestImportEntriesIncomingWins(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("a", day(2, 9), day(2, 17))))

	incoming := mkClosed("a", day(2, 9), day(2, 18))
	incoming.Notes = "from other device"
	n, err := svc.ImportEntries(ctx, []model.TimeEntry{incoming, mkClosed("b", day(3, 9), day(3, 17))})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := repo.GetEntry(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "from other device", stored.Notes)
}

func TestRatesFallBackToDefaults(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	rates, err := svc.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultRates(), rates)

	saved := defaultRates()
	saved.BaseHourlyRate = 30
	require.NoError(t, svc.UpdateRates(ctx, saved))
	require.NotNil(t, repo.rates)

	rates, err = svc.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30.0, rates.BaseHourlyRate)
}

func TestUpdateRatesRejectsBadWindow(t *testing.T) {
	svc, _, _ := newTestService()

	bad := defaultRates()
	bad.NightDiffStartTime = "25:99"
	assert.ErrorIs(t, svc.UpdateRates(context.Background(), bad), ErrInvalidRates)
}

func TestSummaryOverPeriod(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("a", day(2, 8), day(2, 17)))) // 9h: 8 base + 1 OT
	require.NoError(t, repo.UpsertEntry(ctx, mkClosed("out-of-period", day(20, 8), day(20, 17))))

	s, err := svc.Summary(ctx, day(2, 0), day(9, 0))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, s.BaseHours, 1e-9)
	assert.InDelta(t, 1.0, s.OTHours, 1e-9)
	assert.InDelta(t, 9.0, s.TotalHours, 1e-9)
}

func TestRequestSummaryEmailPublishes(t *testing.T) {
	svc, _, producer := newTestService()

	require.NoError(t, svc.RequestSummaryEmail(context.Background(), "me@example.com", day(2, 0), day(9, 0)))
	assert.Len(t, producer.email, 1)
}
