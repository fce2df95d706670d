package repository

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shifttrack.service/internal/core/model"
)

// TimeEntryRepository is the concrete implementation for a PostgreSQL database.
type TimeEntryRepository struct {
	DB *sql.DB
}

// NewTimeEntryRepository create new instance
func NewTimeEntryRepository(db *sql.DB) Repository {
	return &TimeEntryRepository{DB: db}
}

const entryColumns = `id, clock_in, clock_out, notes, sync_status, sync_retry_count`

func scanEntry(row interface{ Scan(...any) error }) (*model.TimeEntry, error) {
	var (
		e        model.TimeEntry
		clockOut sql.NullTime
		notes    sql.NullString
	)
	if err := row.Scan(&e.ID, &e.ClockIn, &clockOut, &notes, &e.SyncStatus, &e.SyncRetryCount); err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t := clockOut.Time
		e.ClockOut = &t
	}
	e.Notes = notes.String
	return &e, nil
}

// ListEntries returns every entry whose clock-in falls in [from, to).
func (r *TimeEntryRepository) ListEntries(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
              FROM time_entries
              WHERE clock_in >= $1 AND clock_in < $2
              ORDER BY clock_in ASC`

	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListAllEntries returns the full collection, ordered by clock-in.
func (r *TimeEntryRepository) ListAllEntries(ctx context.Context) ([]model.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries ORDER BY clock_in ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]model.TimeEntry, error) {
	entries := []model.TimeEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// GetEntry fetches one entry by id. Returns nil when it does not exist.
func (r *TimeEntryRepository) GetEntry(ctx context.Context, id string) (*model.TimeEntry, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.entry_id", id))

	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindOpenEntry returns the in-progress shift, if any.
func (r *TimeEntryRepository) FindOpenEntry(ctx context.Context) (*model.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
              FROM time_entries
              WHERE clock_out IS NULL
              ORDER BY clock_in DESC
              LIMIT 1`

	e, err := scanEntry(r.DB.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpsertEntry inserts the entry or replaces its fields wholesale by id.
func (r *TimeEntryRepository) UpsertEntry(ctx context.Context, e model.TimeEntry) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.entry_id", e.ID))

	var clockOut sql.NullTime
	if e.ClockOut != nil {
		clockOut = sql.NullTime{Time: *e.ClockOut, Valid: true}
	}

	query := `INSERT INTO time_entries (id, clock_in, clock_out, notes, sync_status, sync_retry_count)
              VALUES ($1, $2, $3, $4, $5, $6)
              ON CONFLICT (id) DO UPDATE
              SET clock_in = EXCLUDED.clock_in,
                  clock_out = EXCLUDED.clock_out,
                  notes = EXCLUDED.notes,
                  sync_status = EXCLUDED.sync_status,
                  sync_retry_count = EXCLUDED.sync_retry_count`

	_, err := r.DB.ExecContext(ctx, query, e.ID, e.ClockIn, clockOut, e.Notes, e.SyncStatus, e.SyncRetryCount)
	return err
}

// DeleteEntry removes an entry. Returns sql.ErrNoRows when nothing matched.
func (r *TimeEntryRepository) DeleteEntry(ctx context.Context, id string) error {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.entry_id", id))

	res, err := r.DB.ExecContext(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReplaceEntries swaps the whole collection for the merged one, atomically.
func (r *TimeEntryRepository) ReplaceEntries(ctx context.Context, entries []model.TimeEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries`); err != nil {
		return err
	}

	query := `INSERT INTO time_entries (id, clock_in, clock_out, notes, sync_status, sync_retry_count)
              VALUES ($1, $2, $3, $4, $5, $6)`
	for _, e := range entries {
		var clockOut sql.NullTime
		if e.ClockOut != nil {
			clockOut = sql.NullTime{Time: *e.ClockOut, Valid: true}
		}
		status := e.SyncStatus
		if status == "" {
			status = model.StatusSyncPending
		}
		if _, err := tx.ExecContext(ctx, query, e.ID, e.ClockIn, clockOut, e.Notes, status, e.SyncRetryCount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateSyncStatus updates the status and retry count for the cloud push of one entry.
func (r *TimeEntryRepository) UpdateSyncStatus(ctx context.Context, id string, status model.SyncStatus, retryCount int) error {
	query := `UPDATE time_entries
              SET sync_status = $1,
                  sync_retry_count = $2
              WHERE id = $3`

	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}
