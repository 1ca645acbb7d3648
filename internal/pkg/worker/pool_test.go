package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestPool(t *testing.T, size int) *Pool {
	t.Helper()
	p, err := New(context.Background(), Config{Name: "test", Size: size, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestPoolDefaults(t *testing.T) {
	p, err := New(context.Background(), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = p.Shutdown(time.Second) }()
	st := p.Stats()
	if st.Cap != DefaultSize || st.Name != "general" {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestPoolSubmit(t *testing.T) {
	p := newTestPool(t, 2)
	defer func() { _ = p.Shutdown(time.Second) }()

	var executed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		if err := p.Submit(context.Background(), func(context.Context) {
			executed.Add(1)
			wg.Done()
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	wg.Wait()
	if executed.Load() != 5 {
		t.Fatalf("expected 5 executions, got %d", executed.Load())
	}
}

func TestPoolSubmitCanceledContext(t *testing.T) {
	p := newTestPool(t, 1)
	defer func() { _ = p.Shutdown(time.Second) }()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Submit(ctx, func(context.Context) { t.Error("task must not run") }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	p := newTestPool(t, 1)
	defer func() { _ = p.Shutdown(time.Second) }()
	done := make(chan struct{})
	if err := p.Submit(context.Background(), func(context.Context) { panic("boom") }); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := p.Submit(context.Background(), func(context.Context) { close(done) }); err != nil {
		t.Fatalf("submit after panic: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not keep running after panic")
	}
}

func TestPoolDetachedObservesShutdown(t *testing.T) {
	p := newTestPool(t, 1)
	started := make(chan struct{})
	stopped := make(chan struct{})
	if err := p.SubmitDetached(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(stopped)
	}); err != nil {
		t.Fatalf("submit detached: %v", err)
	}
	<-started
	if err := p.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case <-stopped:
	default:
		t.Fatalf("detached task should have observed cancellation")
	}
	if err := p.SubmitDetached(func(context.Context) {}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}
