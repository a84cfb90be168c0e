package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nestfolio/holdings/internal/domain"
	"github.com/nestfolio/holdings/internal/valuation"
)

// AccountSource provides the live account and holding data a valuation is
// built from.
type AccountSource interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	Holdings(ctx context.Context, accountID string) ([]domain.Holding, error)
}

// Service generates and retrieves household valuation snapshots.
type Service struct {
	source AccountSource
	repo   Repository
}

// NewService creates a new snapshot Service.
func NewService(source AccountSource, repo Repository) *Service {
	return &Service{source: source, repo: repo}
}

// Generate builds a valuation report from live data and stores it under the
// given household slug and date. Holdings fetches that fail contribute an
// empty position set, so one bad account never sinks the whole snapshot.
func (s *Service) Generate(ctx context.Context, slug string, date time.Time) (valuation.Report, error) {
	householdID, err := s.repo.GetHouseholdID(ctx, slug)
	if err != nil {
		return valuation.Report{}, fmt.Errorf("getting household: %w", err)
	}

	accounts, err := s.source.Accounts(ctx)
	if err != nil {
		return valuation.Report{}, fmt.Errorf("fetching accounts: %w", err)
	}

	holdingsByAccount := make(map[string][]domain.Holding)
	for _, a := range accounts {
		if !a.IsInvestment() || a.IsHidden {
			continue
		}
		holdings, err := s.source.Holdings(ctx, a.ID)
		if err != nil {
			slog.Warn("snapshot: holdings fetch failed, treating as empty", "account", a.ID, "error", err)
			holdings = []domain.Holding{}
		}
		holdingsByAccount[a.ID] = holdings
	}

	report := valuation.BuildReport(accounts, holdingsByAccount, date)

	data, err := json.Marshal(report)
	if err != nil {
		return valuation.Report{}, fmt.Errorf("marshaling report: %w", err)
	}

	if err := s.repo.Save(ctx, householdID, date, data); err != nil {
		return valuation.Report{}, fmt.Errorf("saving snapshot: %w", err)
	}

	return report, nil
}

// GetLatest retrieves the most recent snapshot for the household.
func (s *Service) GetLatest(ctx context.Context, slug string) (*Snapshot, error) {
	return s.repo.GetLatest(ctx, slug)
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, slug string, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, slug, date)
}

// List retrieves recent snapshots.
func (s *Service) List(ctx context.Context, slug string, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, slug, limit)
}
