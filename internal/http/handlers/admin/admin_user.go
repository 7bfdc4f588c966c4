package admin

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SetUserBlockedRequest 封禁请求
type SetUserBlockedRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

// SetUserBlocked 封禁或解封用户，下一次请求立即生效
func (h *Handler) SetUserBlocked(c *gin.Context) {
	actor, ok := getAdminActor(c)
	if !ok {
		return
	}
	userID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req SetUserBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.SetBlocked(userID, *req.Blocked)
	if err != nil {
		respondServiceError(c, err, "error.user_update_failed")
		return
	}
	requestLog(c).Infow("admin_user_block_changed", "admin_id", actor.UserID, "user_id", user.ID, "blocked", user.IsBlocked)
	response.Success(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"is_blocked": user.IsBlocked,
	})
}
