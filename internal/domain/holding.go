package domain

import "time"

// Holding is a single position within an investment account. Quantity, value
// and cost basis travel as decimal strings; a nil CostBasis means the cost is
// unknown, which is distinct from a cost of "0".
type Holding struct {
	ID           string     `json:"id"`
	AccountID    string     `json:"accountId"`
	TickerSymbol *string    `json:"tickerSymbol"`
	Name         *string    `json:"name"`
	Quantity     *string    `json:"quantity"`
	CurrentValue *string    `json:"currentValue"`
	CostBasis    *string    `json:"costBasis"`
	AsOfDate     *time.Time `json:"asOfDate"`
}

// RefreshStatus is a snapshot of the remote price-refresh state.
type RefreshStatus struct {
	LastRefresh     *time.Time `json:"lastRefresh"`
	NextRefresh     *time.Time `json:"nextRefresh"`
	Enabled         bool       `json:"enabled"`
	IntervalMinutes int        `json:"intervalMinutes"`
}

// MarketStatus is a snapshot of the remote market session state.
type MarketStatus struct {
	IsOpen   bool       `json:"isOpen"`
	NextOpen *time.Time `json:"nextOpen"`
}

// RefreshResult reports the outcome of a triggered price refresh.
type RefreshResult struct {
	Refreshed int `json:"refreshed"`
}
