package service

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// orderStatusFlow 标准流转：pending → shipped → delivered，pending → cancelled
var orderStatusFlow = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

var terminalOrderStatuses = map[string]bool{
	constants.OrderStatusDelivered: true,
	constants.OrderStatusCancelled: true,
}

var knownOrderStatuses = map[string]bool{
	constants.OrderStatusPending:   true,
	constants.OrderStatusShipped:   true,
	constants.OrderStatusDelivered: true,
	constants.OrderStatusCancelled: true,
}

// NormalizeOrderStatus 统一为小写；未知状态返回空
func NormalizeOrderStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !knownOrderStatuses[normalized] {
		return ""
	}
	return normalized
}

// IsTerminalOrderStatus 是否终态
func IsTerminalOrderStatus(status string) bool {
	return terminalOrderStatuses[status]
}

// TransitionAuthorizer 判断角色能否把订单设置为目标状态
type TransitionAuthorizer interface {
	CanSetOrderStatus(role, status string) (bool, error)
}

// StaticTransitionRights 内置权限：管理员可设任意状态，买家只能申请取消
type StaticTransitionRights struct{}

// CanSetOrderStatus 实现 TransitionAuthorizer
func (StaticTransitionRights) CanSetOrderStatus(role, status string) (bool, error) {
	switch role {
	case constants.RoleAdmin:
		return true, nil
	case constants.RoleBuyer:
		return status == constants.OrderStatusCancelled, nil
	default:
		return false, nil
	}
}

// OrderStatusMachine 订单状态机，状态是订单创建后唯一可变的字段
type OrderStatusMachine struct {
	guard     *AccountGuard
	orderRepo repository.OrderRepository
	rights    TransitionAuthorizer
}

// NewOrderStatusMachine 创建订单状态机，rights 为空时使用内置权限
func NewOrderStatusMachine(guard *AccountGuard, orderRepo repository.OrderRepository, rights TransitionAuthorizer) *OrderStatusMachine {
	if rights == nil {
		rights = StaticTransitionRights{}
	}
	return &OrderStatusMachine{guard: guard, orderRepo: orderRepo, rights: rights}
}

// CanTransition 判断角色能否把订单从 current 改为 target。
// 终态不可再变；管理员在非终态下可设任意状态（包括跳过 shipped）；
// 其他角色必须同时满足权限与标准流转。
func (m *OrderStatusMachine) CanTransition(role, current, target string) (bool, error) {
	if IsTerminalOrderStatus(current) {
		return false, nil
	}
	allowed, err := m.rights.CanSetOrderStatus(role, target)
	if err != nil || !allowed {
		return false, err
	}
	if role == constants.RoleAdmin {
		return true, nil
	}
	return orderStatusFlow[current][target], nil
}

// Transition 校验并执行状态变更
func (m *OrderStatusMachine) Transition(actor Actor, orderID uint, targetStatus string) (*models.Order, error) {
	target := NormalizeOrderStatus(targetStatus)
	if target == "" {
		return nil, ErrInvalidStatus
	}
	if !actor.valid() {
		return nil, ErrUnauthorized
	}
	if _, err := m.guard.Check(actor.UserID); err != nil {
		return nil, err
	}

	order, err := m.loadOrder(actor, orderID)
	if err != nil {
		return nil, err
	}

	allowed, err := m.CanTransition(actor.Role, order.Status, target)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}

	updated, err := m.orderRepo.UpdateStatus(order.ID, order.Status, target)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if !updated {
		// 读取后状态已被并发修改
		logger.Warnw("order_status_changed_concurrently", "order_id", order.ID, "from", order.Status, "target", target)
		return nil, ErrInvalidTransition
	}
	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"from", order.Status,
		"to", target,
		"actor_id", actor.UserID,
		"actor_role", actor.Role,
	)

	reloaded, err := m.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if reloaded == nil {
		return nil, ErrOrderNotFound
	}
	return reloaded, nil
}

func (m *OrderStatusMachine) loadOrder(actor Actor, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	var (
		order *models.Order
		err   error
	)
	if actor.IsAdmin() {
		order, err = m.orderRepo.GetByID(orderID)
	} else {
		// 买家只能看到自己的订单，他人订单按不存在处理
		order, err = m.orderRepo.GetByIDAndUser(orderID, actor.UserID)
	}
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
