package guestcart

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

type fakeCartClient struct {
	unknown   map[uint]bool
	added     map[uint]int
	calls     []uint
	refreshed int
}

func (f *fakeCartClient) AddItem(_ context.Context, productID uint, quantity int) error {
	f.calls = append(f.calls, productID)
	if f.unknown[productID] {
		return errors.New("user or product does not exist")
	}
	if f.added == nil {
		f.added = map[uint]int{}
	}
	f.added[productID] += quantity
	return nil
}

func (f *fakeCartClient) RefreshCart(context.Context) error {
	f.refreshed++
	return nil
}

func TestReconcileSkipsFailedItemAndClearsGuestCart(t *testing.T) {
	store := NewMemoryStore([]Entry{
		{ProductID: 7, ProductName: "Deleted", Price: models.MustMoney("3.00"), Quantity: 1},
		{ProductID: 8, ProductName: "Valid", Price: models.MustMoney("5.00"), Quantity: 2},
	})
	client := &fakeCartClient{unknown: map[uint]bool{7: true}}

	outcome, err := NewReconciler(store, client).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(outcome.Merged) != 1 || outcome.Merged[0].ProductID != 8 {
		t.Fatalf("expected product 8 merged, got %+v", outcome.Merged)
	}
	if len(outcome.Skipped) != 1 || outcome.Skipped[0].Entry.ProductID != 7 {
		t.Fatalf("expected product 7 skipped, got %+v", outcome.Skipped)
	}
	if outcome.Skipped[0].Reason == "" {
		t.Fatalf("expected skip reason")
	}
	if client.added[8] != 2 {
		t.Fatalf("expected quantity 2 added for product 8, got %d", client.added[8])
	}
	if len(client.calls) != 2 || client.calls[0] != 7 || client.calls[1] != 8 {
		t.Fatalf("expected sequential calls in stored order, got %v", client.calls)
	}
	if client.refreshed != 1 {
		t.Fatalf("expected server cart refreshed once")
	}
	left, _ := store.Load()
	if len(left) != 0 {
		t.Fatalf("expected guest cart cleared, got %d entries", len(left))
	}
}

func TestReconcileClearsEvenWhenEverythingFails(t *testing.T) {
	store := NewMemoryStore([]Entry{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 0}})
	client := &fakeCartClient{unknown: map[uint]bool{1: true}}

	outcome, err := NewReconciler(store, client).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(outcome.Merged) != 0 || len(outcome.Skipped) != 2 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if len(client.calls) != 1 {
		t.Fatalf("invalid quantity entry must not reach the server, calls=%v", client.calls)
	}
	left, _ := store.Load()
	if len(left) != 0 {
		t.Fatalf("expected guest cart cleared")
	}
}

func TestReconcileEmptyGuestCart(t *testing.T) {
	client := &fakeCartClient{}
	outcome, err := NewReconciler(NewMemoryStore(nil), client).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(outcome.Merged) != 0 || len(outcome.Skipped) != 0 {
		t.Fatalf("expected empty outcome")
	}
	if len(client.calls) != 0 {
		t.Fatalf("expected no server calls")
	}
}
