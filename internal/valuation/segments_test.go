package valuation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
)

func investment(id, subtype, balance string) domain.Account {
	return domain.Account{
		ID:             id,
		Type:           domain.AccountTypeInvestment,
		Subtype:        strPtr(subtype),
		CurrentBalance: strPtr(balance),
	}
}

func TestGroupBySegment(t *testing.T) {
	accounts := []domain.Account{
		investment("a1", "401k", "10000"),
		investment("a2", "brokerage", "5000"),
	}

	groups := GroupBySegment(accounts)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	brokerage, retirement := groups[0], groups[1]
	if brokerage.Segment != domain.SegmentBrokerage {
		t.Errorf("first group = %q, want brokerage", brokerage.Segment)
	}
	if len(brokerage.Accounts) != 1 || brokerage.Accounts[0].ID != "a2" {
		t.Errorf("brokerage accounts = %v, want only a2", brokerage.Accounts)
	}
	if !brokerage.TotalBalance.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("brokerage total = %v, want 5000", brokerage.TotalBalance)
	}
	if len(retirement.Accounts) != 1 || retirement.Accounts[0].ID != "a1" {
		t.Errorf("retirement accounts = %v, want only a1", retirement.Accounts)
	}
	if !retirement.TotalBalance.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("retirement total = %v, want 10000", retirement.TotalBalance)
	}
}

func TestGroupBySegmentExcludesHiddenAndNonInvestment(t *testing.T) {
	hidden := investment("a1", "ira", "100")
	hidden.IsHidden = true
	checking := domain.Account{ID: "a2", Type: domain.AccountTypeDepository}

	groups := GroupBySegment([]domain.Account{hidden, checking})
	for _, g := range groups {
		if len(g.Accounts) != 0 {
			t.Errorf("segment %q has %d accounts, want 0", g.Segment, len(g.Accounts))
		}
	}
}

func TestFilterByOwner(t *testing.T) {
	alice := investment("a1", "brokerage", "1")
	alice.OwnerUserID = strPtr("u-alice")
	shared := investment("a2", "brokerage", "1")
	accounts := []domain.Account{alice, shared}

	if got := FilterByOwner(accounts, ""); len(got) != 2 {
		t.Errorf("no filter kept %d accounts, want 2", len(got))
	}

	got := FilterByOwner(accounts, OwnerFilterShared)
	if len(got) != 1 || got[0].ID != "a2" {
		t.Errorf("shared filter = %v, want only a2", got)
	}

	got = FilterByOwner(accounts, "u-alice")
	if len(got) != 1 || got[0].ID != "a1" {
		t.Errorf("owner filter = %v, want only a1", got)
	}

	if got := FilterByOwner(accounts, "u-nobody"); len(got) != 0 {
		t.Errorf("unknown owner kept %d accounts, want 0", len(got))
	}
}
