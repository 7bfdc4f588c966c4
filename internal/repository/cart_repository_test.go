package repository

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestCartAddQuantityMergesOnConflict(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "merge@example.com")
	product := createTestProduct(t, db, "Widget", "10.00")

	first, err := repo.AddQuantity(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if first.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", first.Quantity)
	}

	second, err := repo.AddQuantity(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", second.Quantity)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if second.Product == nil || second.Product.Name != "Widget" {
		t.Fatalf("expected product preloaded")
	}

	items, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one row per (user, product), got %d", len(items))
	}
}

func TestCartAddQuantityConcurrentIncrementsCompose(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "concurrent@example.com")
	product := createTestProduct(t, db, "Gadget", "3.50")

	const workers = 20
	var group errgroup.Group
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			_, err := repo.AddQuantity(user.ID, product.ID, 1)
			return err
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("concurrent add failed: %v", err)
	}

	item, err := repo.GetByUserAndProduct(user.ID, product.ID)
	if err != nil || item == nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if item.Quantity != workers {
		t.Fatalf("expected quantity %d, got %d", workers, item.Quantity)
	}
}

func TestCartSetQuantityAndDelete(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "set@example.com")
	product := createTestProduct(t, db, "Lamp", "8.00")

	missing, err := repo.SetQuantity(user.ID, product.ID, 4)
	if err != nil {
		t.Fatalf("set missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for absent row")
	}

	if _, err := repo.AddQuantity(user.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	updated, err := repo.SetQuantity(user.ID, product.ID, 7)
	if err != nil || updated == nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected replaced quantity 7, got %d", updated.Quantity)
	}

	deleted, err := repo.DeleteByUserAndProduct(user.ID, product.ID)
	if err != nil || deleted == nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.Quantity != 7 {
		t.Fatalf("expected deleted row returned, got quantity %d", deleted.Quantity)
	}
	again, err := repo.DeleteByUserAndProduct(user.ID, product.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected nil on second delete")
	}
}

func TestCartClearByUserOnlyTouchesSnapshotRows(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "clear@example.com")
	other := createTestUser(t, db, "other@example.com")
	a := createTestProduct(t, db, "A", "1.00")
	b := createTestProduct(t, db, "B", "2.00")

	itemA, _ := repo.AddQuantity(user.ID, a.ID, 1)
	if _, err := repo.AddQuantity(user.ID, b.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.AddQuantity(other.ID, a.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	removed, err := repo.ClearByUser(user.ID, []uint{itemA.ID})
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}

	removed, err = repo.ClearByUser(user.ID, nil)
	if err != nil || removed != 1 {
		t.Fatalf("expected remaining row removed, got %d err=%v", removed, err)
	}

	otherItems, _ := repo.ListByUser(other.ID)
	if len(otherItems) != 1 {
		t.Fatalf("other user's cart must be untouched")
	}
}

func TestCartLockByUserSkipsDeletedProducts(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	products := NewProductRepository(db)
	user := createTestUser(t, db, "lock@example.com")
	live := createTestProduct(t, db, "Live", "4.00")
	gone := createTestProduct(t, db, "Gone", "6.00")

	if _, err := repo.AddQuantity(user.ID, live.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.AddQuantity(user.ID, gone.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := products.Delete(gone.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	items, err := repo.LockByUser(user.ID)
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	for _, item := range items {
		if item.ProductID == gone.ID && item.Product != nil {
			t.Fatalf("deleted product should not be attached")
		}
		if item.ProductID == live.ID && item.Product == nil {
			t.Fatalf("live product should be attached")
		}
	}
}
