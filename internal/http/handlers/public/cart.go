package public

import (
	"github.com/storefront-next/internal/guestcart"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartQuantityRequest 购物车数量请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// MergeGuestCartRequest 游客购物车合并请求
type MergeGuestCartRequest struct {
	Items []guestcart.Entry `json:"items"`
}

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	items, err := h.CartService.ListItems(actor)
	if err != nil {
		respondServiceError(c, err, "error.cart_fetch_failed")
		return
	}
	response.Success(c, items)
}

// AddCartItem 累加购物车商品数量
func (h *Handler) AddCartItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.AddItem(actor, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 覆盖购物车商品数量，数量小于 1 时删除该行
func (h *Handler) UpdateCartItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.SetQuantity(actor, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	item, err := h.CartService.RemoveItem(actor, productID)
	if err != nil {
		respondServiceError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, item)
}

// MergeGuestCart 同步合并游客购物车，返回逐条结果与最新购物车
func (h *Handler) MergeGuestCart(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req MergeGuestCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	outcome, items, err := h.ReconcileService.MergeNow(c.Request.Context(), actor, req.Items)
	if err != nil {
		respondServiceError(c, err, "error.cart_merge_failed")
		return
	}
	response.Success(c, gin.H{
		"merged":  outcome.Merged,
		"skipped": outcome.Skipped,
		"items":   items,
	})
}
