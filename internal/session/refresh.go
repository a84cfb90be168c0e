package session

import (
	"context"
	"fmt"
	"log/slog"
)

// RefreshNow runs the user-triggered price refresh. A call while a refresh is
// already in progress returns immediately without starting a second one.
//
// The steps are strictly sequential: the remote refresh must complete before
// any cached holdings reload, so holdings are never re-fetched against prices
// that are not yet confirmed written. On success every cached account reloads
// concurrently, the refresh status is re-fetched once (market status is left
// to the poller) and a success notice is shown. On failure the cache is left
// untouched and a failure notice is shown.
func (s *Session) RefreshNow(ctx context.Context) {
	s.mu.Lock()
	if s.closed || s.refreshing {
		s.mu.Unlock()
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	result, err := s.client.TriggerRefresh(ctx)
	if err != nil {
		slog.Warn("price refresh failed", "session", s.ID, "error", err)
		s.notify(NotificationError, "Price refresh failed. Please try again.", failureNotifyTTL)
		return
	}

	s.cache.InvalidateAll(ctx, s.fetchHoldings)

	if status, err := s.client.RefreshStatus(ctx); err != nil {
		slog.Debug("refresh status re-fetch failed", "session", s.ID, "error", err)
	} else {
		s.setRefreshStatus(status)
	}

	slog.Info("price refresh completed", "session", s.ID, "refreshed", result.Refreshed)
	s.notify(NotificationSuccess, fmt.Sprintf("Refreshed prices for %d holdings.", result.Refreshed), successNotifyTTL)
}

// Refreshing reports whether a refresh is currently in progress.
func (s *Session) Refreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}
