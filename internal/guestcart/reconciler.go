package guestcart

import (
	"context"
	"fmt"

	"github.com/storefront-next/internal/logger"
)

// CartClient 服务端购物车写入方
type CartClient interface {
	AddItem(ctx context.Context, productID uint, quantity int) error
}

// CartRefresher 合并完成后重新拉取服务端购物车，可选实现
type CartRefresher interface {
	RefreshCart(ctx context.Context) error
}

// Reconciler 把游客购物车逐条合并进服务端购物车。
// 条目之间不保证原子性，单条失败只记录并跳过；结束后无论成败都清空游客购物车。
type Reconciler struct {
	store  Store
	client CartClient
}

// NewReconciler 创建合并器
func NewReconciler(store Store, client CartClient) *Reconciler {
	return &Reconciler{store: store, client: client}
}

// Reconcile 执行合并
func (r *Reconciler) Reconcile(ctx context.Context) (Outcome, error) {
	outcome := Outcome{Merged: []Entry{}, Skipped: []SkippedEntry{}}
	entries, err := r.store.Load()
	if err != nil {
		// 本地数据损坏同样清空，避免每次登录重复失败
		logger.Warnw("guest_cart_load_failed", "error", err)
		if clearErr := r.store.Clear(); clearErr != nil {
			logger.Warnw("guest_cart_clear_failed", "error", clearErr)
		}
		return outcome, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			outcome.Skipped = append(outcome.Skipped, SkippedEntry{Entry: entry, Reason: err.Error()})
			continue
		}
		if entry.ProductID == 0 || entry.Quantity < 1 {
			reason := fmt.Sprintf("invalid entry: quantity=%d", entry.Quantity)
			outcome.Skipped = append(outcome.Skipped, SkippedEntry{Entry: entry, Reason: reason})
			logger.Warnw("guest_cart_item_skipped", "product_id", entry.ProductID, "reason", reason)
			continue
		}
		if err := r.client.AddItem(ctx, entry.ProductID, entry.Quantity); err != nil {
			outcome.Skipped = append(outcome.Skipped, SkippedEntry{Entry: entry, Reason: err.Error()})
			logger.Warnw("guest_cart_item_skipped", "product_id", entry.ProductID, "quantity", entry.Quantity, "reason", err.Error())
			continue
		}
		outcome.Merged = append(outcome.Merged, entry)
	}

	if err := r.store.Clear(); err != nil {
		logger.Warnw("guest_cart_clear_failed", "error", err)
	}
	if refresher, ok := r.client.(CartRefresher); ok {
		if err := refresher.RefreshCart(ctx); err != nil {
			logger.Warnw("guest_cart_refresh_failed", "error", err)
		}
	}

	logger.Infow("guest_cart_reconciled", "merged", len(outcome.Merged), "skipped", len(outcome.Skipped))
	return outcome, nil
}
