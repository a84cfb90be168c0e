package upstream

import (
	"context"
	"fmt"

	"github.com/nestfolio/holdings/internal/domain"
)

// RefreshStatus fetches the household's price-refresh status.
func (c *Client) RefreshStatus(ctx context.Context) (domain.RefreshStatus, error) {
	var status domain.RefreshStatus
	if err := c.getJSON(ctx, "/api/v1/investments/refresh-status", &status); err != nil {
		return domain.RefreshStatus{}, fmt.Errorf("fetching refresh status: %w", err)
	}
	return status, nil
}

// MarketStatus fetches the current market session status.
func (c *Client) MarketStatus(ctx context.Context) (domain.MarketStatus, error) {
	var status domain.MarketStatus
	if err := c.getJSON(ctx, "/api/v1/investments/market-status", &status); err != nil {
		return domain.MarketStatus{}, fmt.Errorf("fetching market status: %w", err)
	}
	return status, nil
}

// TriggerRefresh asks the account-data service to refresh stored prices for
// every holding. It reports how many holdings were updated.
func (c *Client) TriggerRefresh(ctx context.Context) (domain.RefreshResult, error) {
	var result domain.RefreshResult
	if err := c.postJSON(ctx, "/api/v1/investments/refresh-prices", &result); err != nil {
		return domain.RefreshResult{}, fmt.Errorf("triggering price refresh: %w", err)
	}
	return result, nil
}
