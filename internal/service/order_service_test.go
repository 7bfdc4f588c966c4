package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

func TestCreateOrderTotalsAndClearsCart(t *testing.T) {
	s := setupServiceTest(t)
	buyer, _ := s.createBuyer(t, "checkout@example.com")
	a := s.createProduct(t, "A", "10.00")
	b := s.createProduct(t, "B", "5.00")
	if _, err := s.cart.AddItem(buyer, a.ID, 2); err != nil {
		t.Fatalf("add A failed: %v", err)
	}
	if _, err := s.cart.AddItem(buyer, b.ID, 1); err != nil {
		t.Fatalf("add B failed: %v", err)
	}

	order, err := s.order.CreateOrder(buyer)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.TotalCost.String() != "25.00" {
		t.Fatalf("expected total 25.00, got %s", order.TotalCost)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}

	stored, err := s.orders.GetByID(order.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
	sum := models.ZeroMoney()
	prices := map[uint]string{}
	for _, item := range stored.Items {
		sum = sum.Add(item.LineTotal())
		prices[item.ProductID] = item.PriceAtPurchase.String()
	}
	if !sum.Equal(stored.TotalCost) {
		t.Fatalf("sum of items %s must equal total %s", sum, stored.TotalCost)
	}
	if prices[a.ID] != "10.00" || prices[b.ID] != "5.00" {
		t.Fatalf("unexpected price snapshot: %v", prices)
	}

	items, _ := s.cart.ListItems(buyer)
	if len(items) != 0 {
		t.Fatalf("expected cart empty after order, got %d rows", len(items))
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	s := setupServiceTest(t)
	buyer, _ := s.createBuyer(t, "empty@example.com")

	if _, err := s.order.CreateOrder(buyer); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no order rows, got %d", count)
	}
}

func TestCreateOrderRollsBackOnUnavailableProduct(t *testing.T) {
	s := setupServiceTest(t)
	buyer, _ := s.createBuyer(t, "rollback@example.com")
	live := s.createProduct(t, "Live", "4.00")
	gone := s.createProduct(t, "Gone", "6.00")
	if _, err := s.cart.AddItem(buyer, live.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := s.cart.AddItem(buyer, gone.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := s.products.Delete(gone.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	if _, err := s.order.CreateOrder(buyer); !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("expected ErrProductUnavailable, got %v", err)
	}
	assertNoOrdersAndCartSize(t, s, buyer, 2)
}

func TestCreateOrderRollsBackOnStorageFailure(t *testing.T) {
	s := setupServiceTest(t)
	buyer, _ := s.createBuyer(t, "storage@example.com")
	product := s.createProduct(t, "Chair", "30.00")
	if _, err := s.cart.AddItem(buyer, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	injected := errors.New("injected order item failure")
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			_ = tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("register callback failed: %v", err)
	}

	_, err = s.order.CreateOrder(buyer)
	if !errors.Is(err, ErrTransactionFailure) {
		t.Fatalf("expected ErrTransactionFailure, got %v", err)
	}
	if !errors.Is(err, injected) {
		t.Fatalf("expected cause preserved, got %v", err)
	}
	assertNoOrdersAndCartSize(t, s, buyer, 1)
}

func TestPriceChangeDoesNotAlterExistingOrder(t *testing.T) {
	s := setupServiceTest(t)
	buyer, _ := s.createBuyer(t, "price@example.com")
	product := s.createProduct(t, "Sofa", "100.00")
	if _, err := s.cart.AddItem(buyer, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := s.order.CreateOrder(buyer)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := s.products.UpdatePrice(product.ID, mustMoney("80.00")); err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	orders, _, err := s.order.ListUserOrders(buyer, 1, 20)
	if err != nil || len(orders) != 1 {
		t.Fatalf("list orders failed: %v", err)
	}
	if orders[0].ID != order.ID || orders[0].TotalCost.String() != "100.00" {
		t.Fatalf("order total must stay 100.00, got %s", orders[0].TotalCost)
	}
	if orders[0].Items[0].PriceAtPurchase.String() != "100.00" {
		t.Fatalf("price snapshot must stay 100.00, got %s", orders[0].Items[0].PriceAtPurchase)
	}
}

func TestBlockedAccountCannotCheckout(t *testing.T) {
	s := setupServiceTest(t)
	buyer, user := s.createBuyer(t, "nocheckout@example.com")
	product := s.createProduct(t, "Rug", "20.00")
	if _, err := s.cart.AddItem(buyer, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := s.users.SetBlocked(user.ID, true); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	if _, err := s.order.CreateOrder(buyer); !errors.Is(err, ErrBlockedAccount) {
		t.Fatalf("expected ErrBlockedAccount, got %v", err)
	}
	assertNoOrdersAndCartSize(t, s, buyer, 1)
}

func TestListAdminOrdersRejectsUnknownStatusFilter(t *testing.T) {
	s := setupServiceTest(t)
	if _, _, err := s.order.ListAdminOrders(repository.OrderListFilter{Status: "teleported"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func assertNoOrdersAndCartSize(t *testing.T, s *testServices, buyer Actor, cartRows int) {
	t.Helper()
	var orderCount, itemCount int64
	s.db.Model(&models.Order{}).Count(&orderCount)
	s.db.Model(&models.OrderItem{}).Count(&itemCount)
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("expected no order rows, got orders=%d items=%d", orderCount, itemCount)
	}
	items, err := s.cart.ListItems(buyer)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != cartRows {
		t.Fatalf("expected cart untouched with %d rows, got %d", cartRows, len(items))
	}
}
