package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nestfolio/holdings/internal/domain"
)

func TestRefreshNowReentrancyGuard(t *testing.T) {
	client := newFakeClient()
	release := make(chan struct{})
	client.triggerFn = func() (domain.RefreshResult, error) {
		<-release
		return domain.RefreshResult{Refreshed: 3}, nil
	}
	s := newTestSession(client)

	done := make(chan struct{})
	go func() {
		s.RefreshNow(context.Background())
		close(done)
	}()

	for !s.Refreshing() {
		time.Sleep(time.Millisecond)
	}

	// A click storm while the refresh is in flight must not start another.
	s.RefreshNow(context.Background())
	s.RefreshNow(context.Background())

	close(release)
	<-done

	client.mu.Lock()
	triggers := client.triggerCalls
	client.mu.Unlock()
	if triggers != 1 {
		t.Errorf("trigger calls = %d, want 1", triggers)
	}
	if s.Refreshing() {
		t.Error("refreshing flag still set after completion")
	}
}

func TestRefreshNowReloadsCachedAccountsAfterRefresh(t *testing.T) {
	client := newFakeClient()
	s := newTestSession(client)
	ctx := context.Background()

	s.Toggle(ctx, "a1")
	s.Toggle(ctx, "a2")

	var mu sync.Mutex
	var order []string
	client.triggerFn = func() (domain.RefreshResult, error) {
		mu.Lock()
		order = append(order, "trigger")
		mu.Unlock()
		return domain.RefreshResult{Refreshed: 7}, nil
	}
	client.holdingsFn = func(accountID string) ([]domain.Holding, error) {
		mu.Lock()
		order = append(order, "reload:"+accountID)
		mu.Unlock()
		return []domain.Holding{{AccountID: accountID}}, nil
	}

	s.RefreshNow(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 {
		t.Fatalf("order = %v, want trigger plus two reloads", order)
	}
	if order[0] != "trigger" {
		t.Errorf("order = %v, want the remote refresh to complete before any reload", order)
	}
	reloaded := map[string]bool{order[1]: true, order[2]: true}
	if !reloaded["reload:a1"] || !reloaded["reload:a2"] {
		t.Errorf("order = %v, want both cached accounts reloaded", order)
	}

	n := s.Notification()
	if n == nil || n.Kind != NotificationSuccess {
		t.Fatalf("notification = %+v, want success", n)
	}
	if n.Message != "Refreshed prices for 7 holdings." {
		t.Errorf("message = %q, want refreshed count surfaced", n.Message)
	}
}

func TestRefreshNowRefetchesRefreshStatusOnce(t *testing.T) {
	client := newFakeClient()
	s := newTestSession(client)

	last := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	client.refreshStatusFn = func() (domain.RefreshStatus, error) {
		return domain.RefreshStatus{LastRefresh: &last, Enabled: true}, nil
	}

	s.RefreshNow(context.Background())

	client.mu.Lock()
	statusCalls := client.refreshStatusCalls
	marketCalls := client.marketStatusCalls
	client.mu.Unlock()
	if statusCalls != 1 {
		t.Errorf("refresh status calls = %d, want 1", statusCalls)
	}
	if marketCalls != 0 {
		t.Errorf("market status calls = %d, want 0 (left to the poller)", marketCalls)
	}

	snap := s.Snapshot()
	if snap.RefreshStatus == nil || snap.RefreshStatus.LastRefresh == nil || !snap.RefreshStatus.LastRefresh.Equal(last) {
		t.Errorf("refresh status = %+v, want updated last refresh", snap.RefreshStatus)
	}
}

func TestRefreshNowFailureLeavesCacheUntouched(t *testing.T) {
	client := newFakeClient()
	s := newTestSession(client)
	ctx := context.Background()

	s.Toggle(ctx, "a1")
	before := client.holdingsCount("a1")

	client.triggerFn = func() (domain.RefreshResult, error) {
		return domain.RefreshResult{}, errors.New("upstream exploded")
	}

	s.RefreshNow(ctx)

	if got := client.holdingsCount("a1"); got != before {
		t.Errorf("holdings fetches = %d, want unchanged %d after failed refresh", got, before)
	}
	client.mu.Lock()
	statusCalls := client.refreshStatusCalls
	client.mu.Unlock()
	if statusCalls != 0 {
		t.Errorf("refresh status calls = %d, want 0 after failure", statusCalls)
	}

	n := s.Notification()
	if n == nil || n.Kind != NotificationError {
		t.Fatalf("notification = %+v, want error", n)
	}
	if s.Refreshing() {
		t.Error("refreshing flag still set after failed refresh")
	}
}

func TestRefreshNowOnClosedSessionIsNoop(t *testing.T) {
	client := newFakeClient()
	s := newTestSession(client)
	s.closed = true

	s.RefreshNow(context.Background())

	client.mu.Lock()
	defer client.mu.Unlock()
	if client.triggerCalls != 0 {
		t.Errorf("trigger calls = %d, want 0", client.triggerCalls)
	}
}
