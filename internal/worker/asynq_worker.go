package worker

import (
	"context"
	"strings"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskGuestCartReconcile, c.handleGuestCartReconcile)
}

func (c *Consumer) handleGuestCartReconcile(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_guest_cart_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.DecodeGuestCartReconcilePayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_guest_cart_reconcile_unmarshal_failed", "error", err)
		// 载荷损坏重试也无法恢复
		return asynq.SkipRetry
	}
	if payload.UserID == 0 || strings.TrimSpace(payload.BatchID) == "" {
		logger.Debugw("worker_guest_cart_reconcile_skip_invalid_payload", "user_id", payload.UserID, "batch_id", payload.BatchID)
		return nil
	}
	if len(payload.Entries) == 0 {
		return nil
	}
	if c.ReconcileService == nil {
		logger.Warnw("worker_guest_cart_reconcile_skip_service_nil", "batch_id", payload.BatchID)
		return nil
	}

	actor := service.Actor{UserID: payload.UserID, Role: payload.Role}
	outcome, err := c.ReconcileService.Run(ctx, actor, payload.BatchID, payload.Entries)
	if err != nil {
		logger.Warnw("worker_guest_cart_reconcile_failed", "user_id", payload.UserID, "batch_id", payload.BatchID, "error", err)
		return err
	}
	logger.Infow("worker_guest_cart_reconcile_done",
		"user_id", payload.UserID,
		"batch_id", payload.BatchID,
		"merged", len(outcome.Merged),
		"skipped", len(outcome.Skipped),
	)
	return nil
}
