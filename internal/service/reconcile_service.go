package service

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/guestcart"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/queue"

	"github.com/google/uuid"
)

const inlineReconcileTimeout = 30 * time.Second

// ReconcileTicket 登录时返回的合并回执
type ReconcileTicket struct {
	BatchID string `json:"batch_id,omitempty"`
	Mode    string `json:"mode"`
	Items   int    `json:"items"`
}

// ReconcileService 游客购物车合并调度：登录成功后异步执行，也支持同步合并
type ReconcileService struct {
	cfg         config.ReconcileConfig
	guard       *AccountGuard
	cartService *CartService
	queueClient *queue.Client
	inflight    sync.WaitGroup
}

// NewReconcileService 创建合并服务
func NewReconcileService(cfg config.ReconcileConfig, guard *AccountGuard, cartService *CartService, queueClient *queue.Client) *ReconcileService {
	return &ReconcileService{
		cfg:         cfg,
		guard:       guard,
		cartService: cartService,
		queueClient: queueClient,
	}
}

// Schedule 登录成功后安排一次合并，不阻塞登录响应
func (s *ReconcileService) Schedule(actor Actor, entries []guestcart.Entry) (*ReconcileTicket, error) {
	if err := s.validateEntries(entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &ReconcileTicket{Mode: constants.ReconcileModeNone}, nil
	}
	ticket := &ReconcileTicket{BatchID: uuid.NewString(), Items: len(entries)}

	if s.cfg.Async && s.queueClient.Enabled() {
		err := s.queueClient.EnqueueGuestCartReconcile(queue.GuestCartReconcilePayload{
			BatchID: ticket.BatchID,
			UserID:  actor.UserID,
			Role:    actor.Role,
			Entries: entries,
		})
		if err == nil {
			ticket.Mode = constants.ReconcileModeQueued
			return ticket, nil
		}
		logger.Warnw("guest_cart_reconcile_enqueue_failed", "user_id", actor.UserID, "batch_id", ticket.BatchID, "error", err)
	}

	ticket.Mode = constants.ReconcileModeInline
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), inlineReconcileTimeout)
		defer cancel()
		if _, err := s.Run(ctx, actor, ticket.BatchID, entries); err != nil {
			logger.Warnw("guest_cart_reconcile_failed", "user_id", actor.UserID, "batch_id", ticket.BatchID, "error", err)
		}
	}()
	return ticket, nil
}

// Wait 等待进程内的合并任务结束
func (s *ReconcileService) Wait() {
	s.inflight.Wait()
}

// Run 执行一次合并；同一批次只执行一次
func (s *ReconcileService) Run(ctx context.Context, actor Actor, batchID string, entries []guestcart.Entry) (guestcart.Outcome, error) {
	first, err := cache.MarkGuestReconcile(ctx, batchID, s.dedupeTTL())
	if err != nil {
		logger.Warnw("guest_cart_reconcile_mark_failed", "batch_id", batchID, "error", err)
	} else if !first {
		logger.Infow("guest_cart_reconcile_duplicate", "user_id", actor.UserID, "batch_id", batchID)
		return guestcart.Outcome{Merged: []guestcart.Entry{}, Skipped: []guestcart.SkippedEntry{}}, nil
	}

	store := guestcart.NewMemoryStore(entries)
	client := &serverCartClient{cartService: s.cartService, actor: actor}
	return guestcart.NewReconciler(store, client).Reconcile(ctx)
}

// MergeNow 同步合并并返回合并结果与最新购物车
func (s *ReconcileService) MergeNow(ctx context.Context, actor Actor, entries []guestcart.Entry) (guestcart.Outcome, []CartItemDetail, error) {
	if err := s.validateEntries(entries); err != nil {
		return guestcart.Outcome{}, nil, err
	}
	if _, err := s.guard.Check(actor.UserID); err != nil {
		return guestcart.Outcome{}, nil, err
	}
	outcome, err := s.Run(ctx, actor, "", entries)
	if err != nil {
		return guestcart.Outcome{}, nil, err
	}
	items, err := s.cartService.ListItems(actor)
	if err != nil {
		return outcome, nil, err
	}
	return outcome, items, nil
}

func (s *ReconcileService) validateEntries(entries []guestcart.Entry) error {
	limit := s.cfg.MaxItems
	if limit > 0 && len(entries) > limit {
		return ErrInvalidGuestCart
	}
	return nil
}

func (s *ReconcileService) dedupeTTL() time.Duration {
	if s.cfg.DedupeTTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.cfg.DedupeTTLSeconds) * time.Second
}

// serverCartClient 在服务端直接调用购物车服务完成合并
type serverCartClient struct {
	cartService *CartService
	actor       Actor
}

func (c *serverCartClient) AddItem(ctx context.Context, productID uint, quantity int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.cartService.AddItem(c.actor, productID, quantity)
	return err
}
