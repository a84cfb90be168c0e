package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
)

func strPtr(s string) *string { return &s }

func holding(value, cost *string) domain.Holding {
	return domain.Holding{CurrentValue: value, CostBasis: cost}
}

func TestSumBalances(t *testing.T) {
	accounts := []domain.Account{
		{CurrentBalance: strPtr("10000")},
		{CurrentBalance: strPtr("5000.50")},
		{CurrentBalance: nil},
	}

	got := SumBalances(accounts)
	if !got.Equal(decimal.RequireFromString("15000.50")) {
		t.Errorf("SumBalances = %v, want 15000.50", got)
	}
}

func TestAggregateHoldingsAllCostsKnown(t *testing.T) {
	holdings := []domain.Holding{
		holding(strPtr("100"), strPtr("80")),
		holding(strPtr("50"), strPtr("30")),
	}

	totals := AggregateHoldings(holdings)

	if !totals.TotalValue.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalValue = %v, want 150", totals.TotalValue)
	}
	if totals.TotalCost == nil || !totals.TotalCost.Equal(decimal.NewFromInt(110)) {
		t.Errorf("TotalCost = %v, want 110", totals.TotalCost)
	}
	if totals.TotalGain == nil || !totals.TotalGain.Equal(decimal.NewFromInt(40)) {
		t.Errorf("TotalGain = %v, want 40", totals.TotalGain)
	}
}

func TestAggregateHoldingsUnknownCostPoisonsTotals(t *testing.T) {
	holdings := []domain.Holding{
		holding(strPtr("100"), strPtr("80")),
		holding(strPtr("50"), nil),
	}

	totals := AggregateHoldings(holdings)

	if !totals.TotalValue.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalValue = %v, want 150", totals.TotalValue)
	}
	if totals.TotalCost != nil {
		t.Errorf("TotalCost = %v, want nil", totals.TotalCost)
	}
	if totals.TotalGain != nil {
		t.Errorf("TotalGain = %v, want nil", totals.TotalGain)
	}
}

func TestAggregateHoldingsZeroCostIsKnown(t *testing.T) {
	holdings := []domain.Holding{
		holding(strPtr("100"), strPtr("0")),
	}

	totals := AggregateHoldings(holdings)

	if totals.TotalCost == nil || !totals.TotalCost.IsZero() {
		t.Errorf("TotalCost = %v, want 0", totals.TotalCost)
	}
	if totals.TotalGain == nil || !totals.TotalGain.Equal(decimal.NewFromInt(100)) {
		t.Errorf("TotalGain = %v, want 100", totals.TotalGain)
	}
}

func TestAggregateHoldingsEmpty(t *testing.T) {
	totals := AggregateHoldings(nil)

	if !totals.TotalValue.IsZero() {
		t.Errorf("TotalValue = %v, want 0", totals.TotalValue)
	}
	if totals.TotalCost == nil || !totals.TotalCost.IsZero() {
		t.Errorf("TotalCost = %v, want 0", totals.TotalCost)
	}
}

func TestHoldingGain(t *testing.T) {
	g := HoldingGain(holding(strPtr("100"), strPtr("80")))
	if g == nil {
		t.Fatal("expected a gain")
	}
	if !g.Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Amount = %v, want 20", g.Amount)
	}
	if !g.Percent.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Percent = %v, want 25", g.Percent)
	}
}

func TestHoldingGainUnknownCost(t *testing.T) {
	if g := HoldingGain(holding(strPtr("50"), nil)); g != nil {
		t.Errorf("gain with nil cost = %v, want nil", g)
	}
}

func TestHoldingGainZeroCostGuard(t *testing.T) {
	if g := HoldingGain(holding(strPtr("50"), strPtr("0"))); g != nil {
		t.Errorf("gain with zero cost = %v, want nil", g)
	}
	if g := HoldingGain(holding(strPtr("50"), strPtr("-10"))); g != nil {
		t.Errorf("gain with negative cost = %v, want nil", g)
	}
}
