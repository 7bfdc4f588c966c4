package admin

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAllCarts 管理端查看全部购物车行
func (h *Handler) GetAllCarts(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page"),
		handlershared.QueryInt(c, "page_size"),
	)
	filter := repository.CartListFilter{Page: page, PageSize: pageSize}
	if userID := handlershared.QueryInt(c, "user_id"); userID > 0 {
		filter.UserID = uint(userID)
	}

	items, total, err := h.CartService.ListAll(filter)
	if err != nil {
		respondServiceError(c, err, "error.cart_fetch_failed")
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
