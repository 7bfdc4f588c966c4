package service

import (
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务：购物车结算与订单查询
type OrderService struct {
	guard         *AccountGuard
	cartService   *CartService
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	statusMachine *OrderStatusMachine
}

// NewOrderService 创建订单服务
func NewOrderService(guard *AccountGuard, cartService *CartService, cartRepo repository.CartRepository, orderRepo repository.OrderRepository, statusMachine *OrderStatusMachine) *OrderService {
	return &OrderService{
		guard:         guard,
		cartService:   cartService,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		statusMachine: statusMachine,
	}
}

// CreateOrder 把当前购物车转换为订单。
// 读购物车、写订单与订单项、清空购物车在同一个事务中完成，任一步失败整体回滚。
func (s *OrderService) CreateOrder(actor Actor) (*models.Order, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}
	if _, err := s.guard.Check(actor.UserID); err != nil {
		return nil, err
	}

	var created *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		items, err := s.cartRepo.WithTx(tx).LockByUser(actor.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order, orderItems, itemIDs, err := buildOrderFromCart(actor.UserID, items)
		if err != nil {
			return err
		}
		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}

		removed, err := s.cartService.clearInTx(tx, actor.UserID, itemIDs)
		if err != nil {
			return err
		}
		if removed != int64(len(itemIDs)) {
			// 购物车在结算过程中被并发修改
			logger.Warnw("order_cart_changed_during_checkout", "user_id", actor.UserID, "expected", len(itemIDs), "removed", removed)
			return ErrTransactionFailure
		}
		created = order
		return nil
	})
	if err != nil {
		wrapped := wrapStorageError(err)
		if KindOf(wrapped) == KindTransaction {
			logger.Errorw("order_create_failed", "user_id", actor.UserID, "error", err)
		}
		return nil, wrapped
	}

	logger.Infow("order_created",
		"order_id", created.ID,
		"user_id", actor.UserID,
		"items", len(created.Items),
		"total_cost", created.TotalCost.String(),
	)
	return created, nil
}

// buildOrderFromCart 按实时价格计算总价并生成价格快照
func buildOrderFromCart(userID uint, items []models.CartItem) (*models.Order, []models.OrderItem, []uint, error) {
	total := models.ZeroMoney()
	orderItems := make([]models.OrderItem, 0, len(items))
	itemIDs := make([]uint, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || !product.IsActive {
			logger.Warnw("order_product_unavailable", "user_id", userID, "product_id", item.ProductID)
			return nil, nil, nil, ErrProductUnavailable
		}
		if item.Quantity < 1 {
			return nil, nil, nil, ErrInvalidQuantity
		}
		total = total.Add(product.PriceAmount.Mul(item.Quantity))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: product.PriceAmount,
		})
		itemIDs = append(itemIDs, item.ID)
	}
	order := &models.Order{
		UserID:    userID,
		TotalCost: total,
		Status:    constants.OrderStatusPending,
	}
	return order, orderItems, itemIDs, nil
}

// ListUserOrders 用户订单列表（含订单项，封禁用户仍可查看历史订单）
func (s *OrderService) ListUserOrders(actor Actor, page, pageSize int) ([]models.Order, int64, error) {
	if !actor.valid() {
		return nil, 0, ErrUnauthorized
	}
	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   actor.UserID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, wrapStorageError(err)
	}
	return orders, total, nil
}

// ListAdminOrders 管理端订单列表
func (s *OrderService) ListAdminOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		filter.Status = NormalizeOrderStatus(filter.Status)
		if filter.Status == "" {
			return nil, 0, ErrInvalidStatus
		}
	}
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, wrapStorageError(err)
	}
	return orders, total, nil
}

// UpdateOrderStatus 变更订单状态
func (s *OrderService) UpdateOrderStatus(actor Actor, orderID uint, status string) (*models.Order, error) {
	return s.statusMachine.Transition(actor, orderID, status)
}
