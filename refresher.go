package main

import (
	"context"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/survey_dashboard/config"
	"github.com/pivolan/survey_dashboard/domain/models"
)

// Snapshot is one fully analyzed fetch of the survey data. Snapshots are
// immutable once built; a new one replaces the old wholesale.
type Snapshot struct {
	ID        string
	FetchedAt time.Time
	Table     models.Table
	Profiles  []models.ColumnProfile
	Charts    []models.ChartSpec
	Summary   SummaryReport
}

// BuildSnapshot runs the whole pipeline over raw CSV bytes:
// parse -> classify -> dispatch -> summarize. No state is carried between
// calls, so identical input yields an identical snapshot (ID aside).
func BuildSnapshot(data []byte, cfg *config.Config) (*Snapshot, error) {
	table, err := ParseTable(data)
	if err != nil {
		return nil, err
	}

	profiles := ClassifyTable(table, ClassifyOptions{
		NumericDistinctThreshold: cfg.NumericDistinctThreshold,
	})
	charts := DispatchCharts(table, profiles, DispatchOptions{
		HistogramBins:         cfg.HistogramBins,
		MaxBarCategories:      cfg.MaxBarCategories,
		HeatmapCardinalityCap: cfg.HeatmapCardinalityCap,
	})
	summary := Summarize(table, profiles)

	return &Snapshot{
		ID:        uuid.NewV4().String(),
		FetchedAt: time.Now(),
		Table:     table,
		Profiles:  profiles,
		Charts:    charts,
		Summary:   summary,
	}, nil
}

// Refresher re-runs the pipeline on a fixed interval. The most recent
// successful snapshot wins; a failed tick only records the error and leaves
// the previous snapshot on screen until the next tick.
type Refresher struct {
	cfg     *config.Config
	fetcher *Fetcher

	mu      sync.RWMutex
	current *Snapshot
	lastErr error
}

func NewRefresher(cfg *config.Config) *Refresher {
	return &Refresher{
		cfg:     cfg,
		fetcher: NewFetcher(cfg.SheetURL, cfg.FetchTimeout),
	}
}

// Run blocks until ctx is done, refreshing immediately and then on every
// tick. Errors are never fatal here.
func (r *Refresher) Run(ctx context.Context) {
	if err := r.RefreshOnce(ctx); err != nil {
		logger.Error().Err(err).Msg("initial refresh failed")
	}

	ticker := time.NewTicker(r.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				logger.Error().Err(err).Msg("refresh failed, keeping previous snapshot")
			}
		}
	}
}

// RefreshOnce performs a single fetch-and-analyze tick.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	data, err := r.fetcher.Fetch(ctx)
	if err != nil {
		r.setError(err)
		return err
	}

	snapshot, err := BuildSnapshot(data, r.cfg)
	if err != nil {
		r.setError(err)
		return err
	}

	r.mu.Lock()
	r.current = snapshot
	r.lastErr = nil
	r.mu.Unlock()

	logger.Debug().
		Str("snapshot", snapshot.ID).
		Int("rows", snapshot.Table.RowCount()).
		Int("charts", len(snapshot.Charts)).
		Msg("refreshed survey data")
	return nil
}

func (r *Refresher) setError(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}

// Current returns the latest successful snapshot (may be nil before the
// first success) and the error of the latest tick, if it failed.
func (r *Refresher) Current() (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.lastErr
}
