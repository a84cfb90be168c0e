package valuation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
)

// HoldingTotals aggregates a set of holdings. TotalCost and TotalGain are nil
// when any holding has an unknown cost basis: a partial cost sum would
// understate the true figure, so the whole total is reported as unknown.
type HoldingTotals struct {
	TotalValue decimal.Decimal
	TotalCost  *decimal.Decimal
	TotalGain  *decimal.Decimal
}

// Gain is a single holding's gain over its cost basis.
type Gain struct {
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

// SumBalances sums account balances, treating missing balances as zero.
func SumBalances(accounts []domain.Account) decimal.Decimal {
	return lo.Reduce(accounts, func(acc decimal.Decimal, a domain.Account, _ int) decimal.Decimal {
		return acc.Add(domain.SafeParsePtr(a.CurrentBalance))
	}, decimal.Zero)
}

// AggregateHoldings computes total value, cost and gain for a holding set.
// Missing current values count as zero; the cost total is all-or-nothing.
func AggregateHoldings(holdings []domain.Holding) HoldingTotals {
	totalValue := lo.Reduce(holdings, func(acc decimal.Decimal, h domain.Holding, _ int) decimal.Decimal {
		return acc.Add(domain.SafeParsePtr(h.CurrentValue))
	}, decimal.Zero)

	totalCost := decimal.Zero
	costKnown := true
	for _, h := range holdings {
		cost, ok := domain.ParseKnown(h.CostBasis)
		if !ok {
			costKnown = false
			break
		}
		totalCost = totalCost.Add(cost)
	}

	totals := HoldingTotals{TotalValue: totalValue}
	if costKnown {
		gain := totalValue.Sub(totalCost)
		totals.TotalCost = &totalCost
		totals.TotalGain = &gain
	}
	return totals
}

// HoldingGain computes a single holding's gain. It returns nil when the cost
// basis is unknown or not strictly positive, independent of whether the
// aggregate totals could be computed.
func HoldingGain(h domain.Holding) *Gain {
	cost, ok := domain.ParseKnown(h.CostBasis)
	if !ok || !cost.IsPositive() {
		return nil
	}
	value := domain.SafeParsePtr(h.CurrentValue)
	amount := value.Sub(cost)
	return &Gain{
		Amount:  amount,
		Percent: amount.Div(cost).Mul(decimal.NewFromInt(100)),
	}
}
