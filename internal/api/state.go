package api

import (
	"github.com/shopspring/decimal"

	"github.com/nestfolio/holdings/internal/domain"
	"github.com/nestfolio/holdings/internal/session"
	"github.com/nestfolio/holdings/internal/valuation"
)

// StateResponse is the full render model of one holdings page.
type StateResponse struct {
	SessionID     string                `json:"sessionId"`
	Members       []domain.Member       `json:"members"`
	OwnerFilter   string                `json:"ownerFilter"`
	Segments      []SegmentView         `json:"segments"`
	Refreshing    bool                  `json:"refreshing"`
	RefreshStatus *domain.RefreshStatus `json:"refreshStatus"`
	MarketStatus  *domain.MarketStatus  `json:"marketStatus"`
	Notification  *session.Notification `json:"notification"`
}

// SegmentView is one display segment with its accounts.
type SegmentView struct {
	Segment      domain.Segment  `json:"segment"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Accounts     []AccountView   `json:"accounts"`
}

// AccountView is one account row. Holdings is set only for the expanded
// account; collapsed rows keep their cache entries server-side.
type AccountView struct {
	domain.Account
	SubtypeLabel string        `json:"subtypeLabel"`
	BadgeClass   string        `json:"badgeClass"`
	Expanded     bool          `json:"expanded"`
	Holdings     *HoldingsView `json:"holdings,omitempty"`
}

// HoldingsView is the expanded positions panel of one account.
type HoldingsView struct {
	Loading    bool             `json:"loading"`
	Positions  []PositionView   `json:"positions"`
	TotalValue decimal.Decimal  `json:"totalValue"`
	TotalCost  *decimal.Decimal `json:"totalCost"`
	TotalGain  *decimal.Decimal `json:"totalGain"`
}

// PositionView is one holding row with its computed gain, when the cost basis
// allows one.
type PositionView struct {
	domain.Holding
	Gain *GainView `json:"gain,omitempty"`
}

// GainView is a holding's gain over its cost basis.
type GainView struct {
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// buildState assembles the page render model from a session snapshot and the
// freshly fetched account and member lists.
func buildState(snap session.Snapshot, accounts []domain.Account, members []domain.Member) StateResponse {
	filtered := valuation.FilterByOwner(accounts, snap.OwnerFilter)
	groups := valuation.GroupBySegment(filtered)

	segments := make([]SegmentView, 0, len(groups))
	for _, group := range groups {
		views := make([]AccountView, 0, len(group.Accounts))
		for _, a := range group.Accounts {
			view := AccountView{
				Account:      a,
				SubtypeLabel: domain.LabelOf(a.Subtype),
				BadgeClass:   domain.BadgeClassOf(a.Subtype),
				Expanded:     snap.Expanded != nil && *snap.Expanded == a.ID,
			}
			if view.Expanded {
				view.Holdings = buildHoldings(snap.Holdings[a.ID])
			}
			views = append(views, view)
		}
		segments = append(segments, SegmentView{
			Segment:      group.Segment,
			TotalBalance: group.TotalBalance,
			Accounts:     views,
		})
	}

	return StateResponse{
		SessionID:     snap.ID,
		Members:       members,
		OwnerFilter:   snap.OwnerFilter,
		Segments:      segments,
		Refreshing:    snap.Refreshing,
		RefreshStatus: snap.RefreshStatus,
		MarketStatus:  snap.MarketStatus,
		Notification:  snap.Notification,
	}
}

func buildHoldings(entry session.Entry) *HoldingsView {
	totals := valuation.AggregateHoldings(entry.Holdings)
	view := &HoldingsView{
		Loading:    entry.Loading,
		Positions:  make([]PositionView, 0, len(entry.Holdings)),
		TotalValue: totals.TotalValue,
		TotalCost:  totals.TotalCost,
		TotalGain:  totals.TotalGain,
	}
	for _, h := range entry.Holdings {
		position := PositionView{Holding: h}
		if gain := valuation.HoldingGain(h); gain != nil {
			position.Gain = &GainView{Amount: gain.Amount, Percent: gain.Percent}
		}
		view.Positions = append(view.Positions, position)
	}
	return view
}
