package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nestfolio/holdings/internal/domain"
)

// HoldingsFetcher loads the positions of one account.
type HoldingsFetcher func(ctx context.Context, accountID string) ([]domain.Holding, error)

// Entry is the read-only view of one cache slot. A present entry with Loaded
// false is an in-flight first fetch; Holdings is never nil once Loaded.
type Entry struct {
	Holdings []domain.Holding
	Loaded   bool
	Loading  bool
}

type cacheEntry struct {
	holdings []domain.Holding
	loaded   bool
	loading  bool
}

// HoldingsCache stores holdings per account for the lifetime of a page
// session. Entries are created lazily on first expansion and only ever
// replaced, never evicted.
type HoldingsCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func newHoldingsCache() *HoldingsCache {
	return &HoldingsCache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cache entry for an account, if one exists.
func (c *HoldingsCache) Get(accountID string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[accountID]
	if !ok {
		return Entry{}, false
	}
	return Entry{Holdings: e.holdings, Loaded: e.loaded, Loading: e.loading}, true
}

// Snapshot returns a copy of all cache entries keyed by account id.
func (c *HoldingsCache) Snapshot() map[string]Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Entry, len(c.entries))
	for id, e := range c.entries {
		out[id] = Entry{Holdings: e.holdings, Loaded: e.loaded, Loading: e.loading}
	}
	return out
}

// EnsureLoaded fetches an account's holdings unless an entry already exists,
// loaded or in flight. At most one fetch runs per account id; a failed fetch
// resolves the entry to an empty slice so one bad account never blocks the
// page.
func (c *HoldingsCache) EnsureLoaded(ctx context.Context, accountID string, fetch HoldingsFetcher) {
	c.mu.Lock()
	if _, ok := c.entries[accountID]; ok {
		c.mu.Unlock()
		return
	}
	c.entries[accountID] = &cacheEntry{loading: true}
	c.mu.Unlock()

	c.fill(ctx, accountID, fetch)
}

// InvalidateAll re-fetches every cached account. The re-fetches run
// concurrently, complete independently, and each overwrites only its own
// entry. InvalidateAll returns once all of them have settled.
func (c *HoldingsCache) InvalidateAll(ctx context.Context, fetch HoldingsFetcher) {
	c.mu.Lock()
	ids := make([]string, 0, len(c.entries))
	for id, e := range c.entries {
		e.loading = true
		ids = append(ids, id)
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			c.fill(ctx, id, fetch)
		}(id)
	}
	wg.Wait()
}

// fill runs one fetch and applies the result, clearing the loading flag on
// every path. Fetch errors are swallowed here: the entry resolves to an empty
// holding set and the page renders "no positions".
func (c *HoldingsCache) fill(ctx context.Context, accountID string, fetch HoldingsFetcher) {
	holdings, err := fetch(ctx, accountID)
	if err != nil {
		slog.Warn("holdings fetch failed, treating as empty", "account", accountID, "error", err)
		holdings = []domain.Holding{}
	}
	if holdings == nil {
		holdings = []domain.Holding{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[accountID]
	e.holdings = holdings
	e.loaded = true
	e.loading = false
}
