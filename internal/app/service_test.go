package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
	release  chan struct{}
}

func newFakeService(name string, block bool, startErr error) *fakeService {
	return &fakeService{name: name, block: block, startErr: startErr, release: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(_ context.Context) error {
	if !s.block {
		return s.startErr
	}
	<-s.release
	return nil
}

func (s *fakeService) Stop(_ context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.release)
	}
	return nil
}

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	api := newFakeService("http", true, nil)
	worker := newFakeService("worker", true, nil)
	runner := NewRunner(api, worker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if !api.stopped.Load() || !worker.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerReturnsFirstStartError(t *testing.T) {
	bindErr := errors.New("address in use")
	broken := newFakeService("http", false, bindErr)
	worker := newFakeService("worker", true, nil)

	err := NewRunner(broken, worker).Run(context.Background(), time.Second, nil)
	if !errors.Is(err, bindErr) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !worker.stopped.Load() {
		t.Fatalf("sibling service should be stopped")
	}
}

func TestRunnerRejectsEmpty(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
	if err := RunWithOptions(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil runner")
	}
}

func TestIsValidMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if !IsValidMode(mode) {
			t.Fatalf("mode %s should be valid", mode)
		}
	}
	if IsValidMode("cron") {
		t.Fatalf("unknown mode should be invalid")
	}
	if _, _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
