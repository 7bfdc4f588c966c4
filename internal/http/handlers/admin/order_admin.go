package admin

import (
	"strings"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminOrders 管理端订单列表，支持状态、用户与时间过滤
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := handlershared.NormalizePagination(
		handlershared.QueryInt(c, "page"),
		handlershared.QueryInt(c, "page_size"),
	)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if userID := handlershared.QueryInt(c, "user_id"); userID > 0 {
		filter.UserID = uint(userID)
	}
	var ok bool
	if filter.CreatedFrom, ok = parseTimeQuery(c, "created_from"); !ok {
		return
	}
	if filter.CreatedTo, ok = parseTimeQuery(c, "created_to"); !ok {
		return
	}

	orders, total, err := h.OrderService.ListAdminOrders(filter)
	if err != nil {
		respondServiceError(c, err, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// parseTimeQuery 解析 RFC3339 时间参数，为空时返回 nil
func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, false
	}
	return &parsed, true
}
