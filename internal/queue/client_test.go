package queue

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/guestcart"
)

func TestDisabledClientRejectsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("expected disabled client")
	}
	err = client.EnqueueGuestCartReconcile(GuestCartReconcilePayload{BatchID: "b1", UserID: 1})
	if !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected ErrQueueDisabled, got %v", err)
	}
}

func TestGuestCartReconcileTaskPayload(t *testing.T) {
	task, err := NewGuestCartReconcileTask(GuestCartReconcilePayload{
		BatchID: "batch-1",
		UserID:  42,
		Role:    "buyer",
		Entries: []guestcart.Entry{{ProductID: 3, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskGuestCartReconcile {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := DecodeGuestCartReconcilePayload(task.Payload())
	if err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.UserID != 42 || len(payload.Entries) != 1 || payload.Entries[0].Quantity != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues["critical"] == 0 || cfg.Queues["default"] == 0 {
		t.Fatalf("expected default and critical queues, got %v", cfg.Queues)
	}
}
