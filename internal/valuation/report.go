package valuation

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
)

// Report is a point-in-time valuation of a household's investment accounts,
// stored as the snapshot document. Cost and gain stay nil when any underlying
// holding has an unknown cost basis.
type Report struct {
	GeneratedAt  time.Time        `json:"generatedAt"`
	AccountCount int              `json:"accountCount"`
	HoldingCount int              `json:"holdingCount"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	TotalCost    *decimal.Decimal `json:"totalCost"`
	TotalGain    *decimal.Decimal `json:"totalGain"`
	Segments     []SegmentReport  `json:"segments"`
}

// SegmentReport is one segment's slice of the report.
type SegmentReport struct {
	Segment      domain.Segment   `json:"segment"`
	AccountCount int              `json:"accountCount"`
	Balance      decimal.Decimal  `json:"balance"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	TotalCost    *decimal.Decimal `json:"totalCost"`
	TotalGain    *decimal.Decimal `json:"totalGain"`
}

// BuildReport assembles a valuation report from accounts and their holdings.
// Accounts missing from holdingsByAccount contribute balance but no
// positions.
func BuildReport(accounts []domain.Account, holdingsByAccount map[string][]domain.Holding, at time.Time) Report {
	groups := GroupBySegment(accounts)

	report := Report{
		GeneratedAt: at,
		Segments:    make([]SegmentReport, 0, len(groups)),
	}

	var allHoldings []domain.Holding
	for _, group := range groups {
		segmentHoldings := lo.FlatMap(group.Accounts, func(a domain.Account, _ int) []domain.Holding {
			return holdingsByAccount[a.ID]
		})
		totals := AggregateHoldings(segmentHoldings)

		report.Segments = append(report.Segments, SegmentReport{
			Segment:      group.Segment,
			AccountCount: len(group.Accounts),
			Balance:      group.TotalBalance,
			TotalValue:   totals.TotalValue,
			TotalCost:    totals.TotalCost,
			TotalGain:    totals.TotalGain,
		})

		report.AccountCount += len(group.Accounts)
		report.TotalBalance = report.TotalBalance.Add(group.TotalBalance)
		allHoldings = append(allHoldings, segmentHoldings...)
	}

	totals := AggregateHoldings(allHoldings)
	report.HoldingCount = len(allHoldings)
	report.TotalValue = totals.TotalValue
	report.TotalCost = totals.TotalCost
	report.TotalGain = totals.TotalGain
	return report
}
