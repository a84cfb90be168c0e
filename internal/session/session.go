// Package session implements the per-page-session view state of the holdings
// screen: the lazily filled holdings cache, the single-expansion toggle, the
// background status poller and the price-refresh coordinator. A Session is an
// explicit context object created when the page opens and closed when it is
// torn down; nothing here lives in package globals.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nestfolio/holdings/internal/domain"
)

// Client is the slice of the account-data service a session talks to.
type Client interface {
	Accounts(ctx context.Context) ([]domain.Account, error)
	HouseholdMembers(ctx context.Context) ([]domain.Member, error)
	Holdings(ctx context.Context, accountID string) ([]domain.Holding, error)
	RefreshStatus(ctx context.Context) (domain.RefreshStatus, error)
	MarketStatus(ctx context.Context) (domain.MarketStatus, error)
	TriggerRefresh(ctx context.Context) (domain.RefreshResult, error)
}

// Session owns all mutable view state for one open holdings page.
type Session struct {
	ID     string
	client Client
	cache  *HoldingsCache
	poller *statusPoller

	mu            sync.Mutex
	closed        bool
	expanded      *string
	ownerFilter   string
	refreshing    bool
	refreshStatus *domain.RefreshStatus
	marketStatus  *domain.MarketStatus
	notification  *Notification
	notifySeq     uint64
}

// Snapshot is the read-only view of a session handed to the rendering layer.
type Snapshot struct {
	ID            string
	Expanded      *string
	OwnerFilter   string
	Refreshing    bool
	RefreshStatus *domain.RefreshStatus
	MarketStatus  *domain.MarketStatus
	Notification  *Notification
	Holdings      map[string]Entry
}

// New creates a session and starts its status poller.
func New(client Client, pollInterval time.Duration) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		client: client,
		cache:  newHoldingsCache(),
	}
	s.poller = newStatusPoller(s, client, pollInterval)
	s.poller.start()
	return s
}

// Close tears the session down: the poller stops and any in-flight fetch
// results arriving afterwards are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.poller.stop()
}

// Snapshot captures the current view state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expanded *string
	if s.expanded != nil {
		id := *s.expanded
		expanded = &id
	}
	return Snapshot{
		ID:            s.ID,
		Expanded:      expanded,
		OwnerFilter:   s.ownerFilter,
		Refreshing:    s.refreshing,
		RefreshStatus: s.refreshStatus,
		MarketStatus:  s.marketStatus,
		Notification:  s.notification,
		Holdings:      s.cache.Snapshot(),
	}
}

// SetOwnerFilter narrows the accounts view to one owner ("" for all,
// "shared" for unassigned accounts, otherwise a member id).
func (s *Session) SetOwnerFilter(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerFilter = value
}

// setRefreshStatus applies a polled refresh status unless the session is
// already closed, guarding against late writes into a torn-down view.
func (s *Session) setRefreshStatus(status domain.RefreshStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.refreshStatus = &status
}

func (s *Session) setMarketStatus(status domain.MarketStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.marketStatus = &status
}

func (s *Session) fetchHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	return s.client.Holdings(ctx, accountID)
}
