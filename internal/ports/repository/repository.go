package repository

import (
	"context"
	"time"

	"shifttrack.service/internal/core/model"
)

// Repository contract for the entry and rate stores. The core always reads
// full collections; ordering is not relied upon by the validators.
type Repository interface {
	ListEntries(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error)
	ListAllEntries(ctx context.Context) ([]model.TimeEntry, error)
	GetEntry(ctx context.Context, id string) (*model.TimeEntry, error)
	FindOpenEntry(ctx context.Context) (*model.TimeEntry, error)
	UpsertEntry(ctx context.Context, e model.TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error
	ReplaceEntries(ctx context.Context, entries []model.TimeEntry) error
	UpdateSyncStatus(ctx context.Context, id string, status model.SyncStatus, retryCount int) error
	GetRates(ctx context.Context) (*model.PayRateConfig, error)
	SaveRates(ctx context.Context, cfg model.PayRateConfig) error
}
