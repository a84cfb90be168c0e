package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nestfolio/holdings/internal/domain"
)

// RefreshTrigger is the slice of the account-data service the auto-refresh
// job talks to.
type RefreshTrigger interface {
	RefreshStatus(ctx context.Context) (domain.RefreshStatus, error)
	MarketStatus(ctx context.Context) (domain.MarketStatus, error)
	TriggerRefresh(ctx context.Context) (domain.RefreshResult, error)
}

// AutoRefreshJob triggers upstream price refreshes without user action. It is
// registered with the cron scheduler and skips quietly when the market is
// closed, refresh is disabled, or the household's refresh interval has not
// elapsed yet.
type AutoRefreshJob struct {
	client           RefreshTrigger
	fallbackInterval time.Duration
	timeout          time.Duration
}

// NewAutoRefreshJob creates the job. fallbackInterval applies when the
// upstream status does not report a refresh interval.
func NewAutoRefreshJob(client RefreshTrigger, fallbackInterval time.Duration) *AutoRefreshJob {
	return &AutoRefreshJob{
		client:           client,
		fallbackInterval: fallbackInterval,
		timeout:          2 * time.Minute,
	}
}

// Run implements cron.Job.
func (j *AutoRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.run(ctx); err != nil {
		slog.Error("AutoRefreshJob: run failed", "error", err)
	}
}

func (j *AutoRefreshJob) run(ctx context.Context) error {
	market, err := j.client.MarketStatus(ctx)
	if err != nil {
		return fmt.Errorf("fetching market status: %w", err)
	}
	if !market.IsOpen {
		slog.Debug("AutoRefreshJob: market closed, skipping")
		return nil
	}

	status, err := j.client.RefreshStatus(ctx)
	if err != nil {
		return fmt.Errorf("fetching refresh status: %w", err)
	}
	if !status.Enabled {
		slog.Debug("AutoRefreshJob: refresh disabled, skipping")
		return nil
	}

	interval := time.Duration(status.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = j.fallbackInterval
	}
	if status.LastRefresh != nil && time.Since(*status.LastRefresh) < interval {
		slog.Debug("AutoRefreshJob: interval not elapsed, skipping",
			"lastRefresh", status.LastRefresh, "interval", interval)
		return nil
	}

	result, err := j.client.TriggerRefresh(ctx)
	if err != nil {
		return fmt.Errorf("triggering refresh: %w", err)
	}

	slog.Info("AutoRefreshJob: refresh completed", "refreshed", result.Refreshed)
	return nil
}
