package public

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder 将购物车结算为订单
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CreateOrder(actor)
	if err != nil {
		respondServiceError(c, err, "error.order_create_failed")
		return
	}
	response.Created(c, gin.H{
		"orderId": order.ID,
		"total":   order.TotalCost,
		"status":  order.Status,
		"items":   order.Items,
	})
}

// ListMyOrders 当前用户订单列表（含订单项）
func (h *Handler) ListMyOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page"),
		handlershared.QueryInt(c, "page_size"),
	)
	orders, total, err := h.OrderService.ListUserOrders(actor, page, pageSize)
	if err != nil {
		respondServiceError(c, err, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// UpdateOrderStatus 变更订单状态，买家与管理员共用，权限由状态机判定
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(actor, orderID, req.Status)
	if err != nil {
		respondServiceError(c, err, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
