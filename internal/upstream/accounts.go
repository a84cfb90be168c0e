package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nestfolio/holdings/internal/domain"
)

// Accounts fetches all linked accounts for the household.
func (c *Client) Accounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := c.getJSON(ctx, "/api/v1/accounts", &accounts); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	return accounts, nil
}

// HouseholdMembers fetches the household's members.
func (c *Client) HouseholdMembers(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	if err := c.getJSON(ctx, "/api/v1/users/household-members", &members); err != nil {
		return nil, fmt.Errorf("fetching household members: %w", err)
	}
	return members, nil
}

// Holdings fetches the positions of a single investment account.
func (c *Client) Holdings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	path := "/api/v1/accounts/" + url.PathEscape(accountID) + "/holdings"
	var holdings []domain.Holding
	if err := c.getJSON(ctx, path, &holdings); err != nil {
		return nil, fmt.Errorf("fetching holdings for account %s: %w", accountID, err)
	}
	return holdings, nil
}
