package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
	"github.com/nestfolio/holdings/internal/snapshot"
	"github.com/nestfolio/holdings/internal/valuation"
)

// historyLimit caps how many snapshots an export covers (one year of dailies).
const historyLimit = 365

// Row is one valuation history line written to a sheet.
type Row struct {
	Date            time.Time
	TotalBalance    decimal.Decimal
	TotalValue      decimal.Decimal
	TotalCost       *decimal.Decimal
	TotalGain       *decimal.Decimal
	BrokerageValue  decimal.Decimal
	RetirementValue decimal.Decimal
	AccountCount    int
	HoldingCount    int
}

// SheetWriter writes valuation rows to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, rows []Row) error
}

// Service loads valuation history and delegates writing to a SheetWriter.
type Service struct {
	snapshots snapshot.Repository
	slug      string
	writer    SheetWriter
}

// NewService creates a new export Service for one household.
func NewService(snapshots snapshot.Repository, slug string, writer SheetWriter) *Service {
	return &Service{snapshots: snapshots, slug: slug, writer: writer}
}

// Export writes the household's valuation history, oldest first. Snapshots
// whose stored document no longer parses are skipped, not fatal.
func (s *Service) Export(ctx context.Context) error {
	snapshots, err := s.snapshots.List(ctx, s.slug, historyLimit)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	rows := make([]Row, 0, len(snapshots))
	for _, snap := range snapshots {
		var report valuation.Report
		if err := json.Unmarshal(snap.Data, &report); err != nil {
			slog.Warn("export: skipping unparseable snapshot", "date", snap.SnapshotDate, "error", err)
			continue
		}
		rows = append(rows, buildRow(snap.SnapshotDate, report))
	}

	// List returns newest first; sheets read top-down chronologically.
	rows = lo.Reverse(rows)

	return s.writer.Write(ctx, rows)
}

func buildRow(date time.Time, report valuation.Report) Row {
	row := Row{
		Date:         date,
		TotalBalance: report.TotalBalance,
		TotalValue:   report.TotalValue,
		TotalCost:    report.TotalCost,
		TotalGain:    report.TotalGain,
		AccountCount: report.AccountCount,
		HoldingCount: report.HoldingCount,
	}
	for _, seg := range report.Segments {
		switch seg.Segment {
		case domain.SegmentBrokerage:
			row.BrokerageValue = seg.TotalValue
		case domain.SegmentRetirement:
			row.RetirementValue = seg.TotalValue
		}
	}
	return row
}

// rowHeaders is the shared column layout of both sheet writers.
var rowHeaders = []any{
	"Date", "Total Balance", "Total Value", "Total Cost", "Total Gain",
	"Brokerage Value", "Retirement Value", "Accounts", "Holdings",
}

func rowValues(r Row) []any {
	return []any{
		r.Date.Format("2006-01-02"),
		toFloat(r.TotalBalance),
		toFloat(r.TotalValue),
		ptrFloat(r.TotalCost),
		ptrFloat(r.TotalGain),
		toFloat(r.BrokerageValue),
		toFloat(r.RetirementValue),
		r.AccountCount,
		r.HoldingCount,
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ptrFloat returns nil for unknown values so the cell stays blank.
func ptrFloat(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return toFloat(*d)
}
