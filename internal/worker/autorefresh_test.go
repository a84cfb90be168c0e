package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nestfolio/holdings/internal/domain"
)

type fakeTrigger struct {
	market       domain.MarketStatus
	marketErr    error
	status       domain.RefreshStatus
	statusErr    error
	triggerCalls int
	triggerErr   error
}

func (f *fakeTrigger) MarketStatus(context.Context) (domain.MarketStatus, error) {
	return f.market, f.marketErr
}

func (f *fakeTrigger) RefreshStatus(context.Context) (domain.RefreshStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeTrigger) TriggerRefresh(context.Context) (domain.RefreshResult, error) {
	f.triggerCalls++
	return domain.RefreshResult{Refreshed: 4}, f.triggerErr
}

func TestAutoRefreshSkipsWhenMarketClosed(t *testing.T) {
	client := &fakeTrigger{
		market: domain.MarketStatus{IsOpen: false},
		status: domain.RefreshStatus{Enabled: true},
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.triggerCalls != 0 {
		t.Errorf("trigger calls = %d, want 0", client.triggerCalls)
	}
}

func TestAutoRefreshSkipsWhenDisabled(t *testing.T) {
	client := &fakeTrigger{
		market: domain.MarketStatus{IsOpen: true},
		status: domain.RefreshStatus{Enabled: false},
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.triggerCalls != 0 {
		t.Errorf("trigger calls = %d, want 0", client.triggerCalls)
	}
}

func TestAutoRefreshSkipsWhenIntervalNotElapsed(t *testing.T) {
	recent := time.Now().Add(-2 * time.Minute)
	client := &fakeTrigger{
		market: domain.MarketStatus{IsOpen: true},
		status: domain.RefreshStatus{Enabled: true, IntervalMinutes: 15, LastRefresh: &recent},
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.triggerCalls != 0 {
		t.Errorf("trigger calls = %d, want 0", client.triggerCalls)
	}
}

func TestAutoRefreshTriggersWhenDue(t *testing.T) {
	stale := time.Now().Add(-time.Hour)
	client := &fakeTrigger{
		market: domain.MarketStatus{IsOpen: true},
		status: domain.RefreshStatus{Enabled: true, IntervalMinutes: 15, LastRefresh: &stale},
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.triggerCalls != 1 {
		t.Errorf("trigger calls = %d, want 1", client.triggerCalls)
	}
}

func TestAutoRefreshTriggersWhenNeverRefreshed(t *testing.T) {
	client := &fakeTrigger{
		market: domain.MarketStatus{IsOpen: true},
		status: domain.RefreshStatus{Enabled: true, IntervalMinutes: 15},
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.triggerCalls != 1 {
		t.Errorf("trigger calls = %d, want 1", client.triggerCalls)
	}
}

func TestAutoRefreshPropagatesTriggerError(t *testing.T) {
	client := &fakeTrigger{
		market:     domain.MarketStatus{IsOpen: true},
		status:     domain.RefreshStatus{Enabled: true},
		triggerErr: errors.New("boom"),
	}
	job := NewAutoRefreshJob(client, 15*time.Minute)

	if err := job.run(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
}
