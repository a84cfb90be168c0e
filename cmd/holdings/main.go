package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/nestfolio/holdings/internal/api"
	"github.com/nestfolio/holdings/internal/config"
	"github.com/nestfolio/holdings/internal/database"
	"github.com/nestfolio/holdings/internal/export"
	"github.com/nestfolio/holdings/internal/session"
	"github.com/nestfolio/holdings/internal/snapshot"
	"github.com/nestfolio/holdings/internal/upstream"
	"github.com/nestfolio/holdings/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:           "holdings",
		Usage:          "holdings cache and price-refresh coordinator",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server and background workers",
				Action: runServe,
			},
			{
				Name:   "snapshot",
				Usage:  "generate one valuation snapshot and exit",
				Action: runSnapshot,
			},
			{
				Name:   "export",
				Usage:  "export the valuation history to a spreadsheet and exit",
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func connect(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating migrations sub-fs: %w", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return pool, nil
}

// exportWriter picks the configured spreadsheet destination, Google Sheets
// over a local workbook. Returns nil when neither is configured.
func exportWriter(ctx context.Context, cfg config.Config) (export.SheetWriter, error) {
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		return export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
	}
	if cfg.XLSXExportPath != "" {
		return export.NewXLSXWriter(cfg.XLSXExportPath), nil
	}
	return nil, nil
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay)

	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(client, snapshotRepo)

	if _, err := snapshotRepo.EnsureHousehold(ctx, cfg.HouseholdSlug, "Household"); err != nil {
		return fmt.Errorf("ensuring household: %w", err)
	}

	var hook worker.ExportHook
	writer, err := exportWriter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("configuring export: %w", err)
	}
	if writer != nil {
		hook = export.NewService(snapshotRepo, cfg.HouseholdSlug, writer)
	}

	snapshotWorker := worker.NewSnapshotWorker(snapshotSvc, cfg.HouseholdSlug, cfg.SnapshotInterval, hook)
	go snapshotWorker.Run(ctx)

	scheduler := cron.New()
	if _, err := scheduler.AddJob(cfg.AutoRefreshSchedule, worker.NewAutoRefreshJob(client, cfg.RefreshFallbackInterval)); err != nil {
		return fmt.Errorf("scheduling auto-refresh: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	manager := session.NewManager(client, cfg.StatusPollInterval)
	defer manager.CloseAll()

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	srv := api.NewServer(cfg.HTTPPort, manager, client, snapshotSvc, cfg.HouseholdSlug, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func runSnapshot(c *cli.Context) error {
	cfg := config.Load()

	pool, err := connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	client := upstream.NewClient(cfg.UpstreamURL, cfg.UpstreamToken, cfg.UpstreamRetryMax, cfg.UpstreamRetryBaseDelay)
	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(client, snapshotRepo)

	if _, err := snapshotRepo.EnsureHousehold(c.Context, cfg.HouseholdSlug, "Household"); err != nil {
		return fmt.Errorf("ensuring household: %w", err)
	}

	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	report, err := snapshotSvc.Generate(c.Context, cfg.HouseholdSlug, date)
	if err != nil {
		return fmt.Errorf("generating snapshot: %w", err)
	}

	log.Printf("Snapshot generated for %s: %d accounts, %d holdings, total value %s",
		date.Format("2006-01-02"), report.AccountCount, report.HoldingCount, report.TotalValue)
	return nil
}

func runExport(c *cli.Context) error {
	cfg := config.Load()

	pool, err := connect(c.Context, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	writer, err := exportWriter(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("configuring export: %w", err)
	}
	if writer == nil {
		return errors.New("no export destination configured, set SHEETS_SPREADSHEET_ID/SHEETS_CREDENTIALS_JSON or XLSX_EXPORT_PATH")
	}

	exportSvc := export.NewService(snapshot.NewPgRepository(pool), cfg.HouseholdSlug, writer)
	if err := exportSvc.Export(c.Context); err != nil {
		return fmt.Errorf("exporting valuations: %w", err)
	}

	log.Println("Export complete")
	return nil
}
