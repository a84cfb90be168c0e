package valuation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
)

// OwnerFilterShared selects accounts with no assigned owner.
const OwnerFilterShared = "shared"

// SegmentGroup is one display segment with its accounts and balance total.
type SegmentGroup struct {
	Segment      domain.Segment
	Accounts     []domain.Account
	TotalBalance decimal.Decimal
}

// GroupBySegment splits visible investment accounts into the brokerage and
// retirement segments, in that order. Hidden and non-investment accounts are
// excluded. Both segments are always present, possibly empty.
func GroupBySegment(accounts []domain.Account) []SegmentGroup {
	visible := lo.Filter(accounts, func(a domain.Account, _ int) bool {
		return a.IsInvestment() && !a.IsHidden
	})

	groups := make([]SegmentGroup, 0, 2)
	for _, segment := range []domain.Segment{domain.SegmentBrokerage, domain.SegmentRetirement} {
		members := lo.Filter(visible, func(a domain.Account, _ int) bool {
			return domain.SegmentOf(a.Subtype) == segment
		})
		groups = append(groups, SegmentGroup{
			Segment:      segment,
			Accounts:     members,
			TotalBalance: SumBalances(members),
		})
	}
	return groups
}

// FilterByOwner narrows accounts to an owner filter value: empty keeps all
// accounts, OwnerFilterShared keeps unassigned ones, anything else is matched
// against the owner user id.
func FilterByOwner(accounts []domain.Account, filter string) []domain.Account {
	switch filter {
	case "":
		return accounts
	case OwnerFilterShared:
		return lo.Filter(accounts, func(a domain.Account, _ int) bool {
			return a.Shared()
		})
	default:
		return lo.Filter(accounts, func(a domain.Account, _ int) bool {
			return a.OwnerUserID != nil && *a.OwnerUserID == filter
		})
	}
}
