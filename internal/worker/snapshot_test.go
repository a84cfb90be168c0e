package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nestfolio/holdings/internal/valuation"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ time.Time) (valuation.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return valuation.Report{}, f.err
}

func (f *fakeGenerator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeHook struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeHook) Export(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

func (f *fakeHook) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSnapshotWorkerGeneratesImmediately(t *testing.T) {
	generator := &fakeGenerator{}
	hook := &fakeHook{}
	w := NewSnapshotWorker(generator, "default", time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for generator.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no generation after start")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	if hook.count() != 1 {
		t.Errorf("hook calls = %d, want 1", hook.count())
	}
}

func TestSnapshotWorkerSkipsHookOnFailure(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("boom")}
	hook := &fakeHook{}
	w := NewSnapshotWorker(generator, "default", time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for generator.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no generation attempt after start")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	if hook.count() != 0 {
		t.Errorf("hook calls = %d, want 0 after failed generation", hook.count())
	}
}
