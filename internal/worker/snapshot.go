package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/nestfolio/holdings/internal/valuation"
)

// ValuationGenerator defines the interface for generating valuation snapshots.
type ValuationGenerator interface {
	Generate(ctx context.Context, slug string, date time.Time) (valuation.Report, error)
}

// ExportHook is called after each successful snapshot generation.
type ExportHook interface {
	Export(ctx context.Context) error
}

// SnapshotWorker periodically generates household valuation snapshots.
type SnapshotWorker struct {
	generator ValuationGenerator
	slug      string
	interval  time.Duration
	hook      ExportHook // optional
}

// NewSnapshotWorker creates a SnapshotWorker with an optional post-generation hook.
func NewSnapshotWorker(generator ValuationGenerator, slug string, interval time.Duration, hook ExportHook) *SnapshotWorker {
	return &SnapshotWorker{
		generator: generator,
		slug:      slug,
		interval:  interval,
		hook:      hook,
	}
}

// runHook calls the post-generation hook if one is configured.
func (w *SnapshotWorker) runHook(ctx context.Context) {
	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx); err != nil {
		slog.Error("SnapshotWorker: export hook failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: export hook completed")
	}
}

// utcDate returns the current date normalized to midnight UTC.
func utcDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Run starts the snapshot worker loop. It blocks until the context is cancelled.
func (w *SnapshotWorker) Run(ctx context.Context) {
	slog.Info("SnapshotWorker: starting")

	// Generate immediately on startup
	if _, err := w.generator.Generate(ctx, w.slug, utcDate()); err != nil {
		slog.Error("SnapshotWorker: initial generation failed", "error", err)
	} else {
		slog.Info("SnapshotWorker: initial generation completed")
		w.runHook(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("SnapshotWorker: shutting down")
			return
		case <-ticker.C:
			if _, err := w.generator.Generate(ctx, w.slug, utcDate()); err != nil {
				slog.Error("SnapshotWorker: generation failed", "error", err)
			} else {
				slog.Info("SnapshotWorker: generation completed")
				w.runHook(ctx)
			}
		}
	}
}
